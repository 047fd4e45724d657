package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/openfeed/openfeed-backend/internal/auth"
	"github.com/openfeed/openfeed-backend/internal/constants"
	"github.com/openfeed/openfeed-backend/internal/models"
	"github.com/openfeed/openfeed-backend/internal/utils"
)

// UserHandler handles user-related routes
type UserHandler struct {
	userService UserServiceInterface
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// pathID extracts a positive int64 URL parameter from the request
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// readPhoto reads an uploaded photo, enforcing the size limit and requiring
// an image content type. Photos arrive as a multipart form with a "photo"
// file part; a raw image body is also accepted.
func readPhoto(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxPhotoSize)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return readPhotoPart(w, r)
	}

	if !strings.HasPrefix(contentType, "image/") {
		utils.BadRequest(w, "Photo uploads must have an image content type", nil)
		return nil, "", false
	}

	photo, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BadRequest(w, constants.MsgRequestBodyTooLarge, nil)
		return nil, "", false
	}
	if len(photo) == 0 {
		utils.BadRequest(w, constants.MsgEmptyRequestBody, nil)
		return nil, "", false
	}

	return photo, contentType, true
}

// readPhotoPart reads the "photo" file part of a multipart upload, taking
// the content type from the part header
func readPhotoPart(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	if err := r.ParseMultipartForm(constants.MaxPhotoSize); err != nil {
		utils.BadRequest(w, constants.MsgRequestBodyTooLarge, nil)
		return nil, "", false
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.BadRequest(w, "Photo uploads must include a photo file part", nil)
		return nil, "", false
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close uploaded file")
		}
	}()

	partType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(partType, "image/") {
		utils.BadRequest(w, "Photo uploads must have an image content type", nil)
		return nil, "", false
	}

	photo, err := io.ReadAll(file)
	if err != nil {
		utils.BadRequest(w, constants.MsgRequestBodyTooLarge, nil)
		return nil, "", false
	}
	if len(photo) == 0 {
		utils.BadRequest(w, constants.MsgEmptyRequestBody, nil)
		return nil, "", false
	}

	return photo, partType, true
}

// ListUsers returns a page of user profiles
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := utils.GetPaginationParams(r)

	users, total, err := h.userService.ListUsers(r.Context(), params.Page, params.PageSize)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Paginated(w, constants.StatusOK, users, params.Page, params.PageSize, total)
}

// GetUser returns a user's public profile
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, constants.ParamUserID)
	if !ok {
		utils.BadRequest(w, "Invalid user ID", nil)
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, user)
}

// GetCurrentUser returns the current user's profile
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	// Get the user from the database
	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// Return the user
	utils.JSON(w, constants.StatusOK, user)
}

// UpdateUser handles updating the current user's profile
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	// Decode and validate the request body
	var update models.UserUpdate
	if err := utils.DecodeAndValidate(r, &update); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// Update the user
	user, err := h.userService.UpdateUser(r.Context(), userID, &update)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// Return the updated user
	utils.JSON(w, constants.StatusOK, user)
}

// DeleteAccount handles deleting the current user's account
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	// Delete the account
	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// Return success
	utils.JSON(w, constants.StatusOK, map[string]interface{}{
		"message": constants.MsgUserDeleted,
	})
}

// DeleteUser handles an admin removing another user's account
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, constants.ParamUserID)
	if !ok {
		utils.BadRequest(w, "Invalid user ID", nil)
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, map[string]interface{}{
		"message": constants.MsgUserDeleted,
	})
}

// GetUserPhoto serves a user's photo with its stored content type
func (h *UserHandler) GetUserPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, constants.ParamUserID)
	if !ok {
		utils.BadRequest(w, "Invalid user ID", nil)
		return
	}

	photo, contentType, err := h.userService.GetPhoto(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Photo(w, photo, contentType)
}

// UpdateProfilePhoto stores a new photo for the current user
func (h *UserHandler) UpdateProfilePhoto(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	photo, contentType, ok := readPhoto(w, r)
	if !ok {
		return
	}

	if err := h.userService.UpdatePhoto(r.Context(), userID, photo, contentType); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, map[string]interface{}{
		"message": "Photo successfully updated",
	})
}

// Follow makes the current user follow another user
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	// Decode and validate the request body
	var req models.FollowRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.userService.Follow(r.Context(), userID, req.UserID); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusCreated, map[string]interface{}{
		"message": "Successfully followed user",
	})
}

// Unfollow makes the current user unfollow another user
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	// Decode and validate the request body
	var req models.FollowRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.userService.Unfollow(r.Context(), userID, req.UserID); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, map[string]interface{}{
		"message": "Successfully unfollowed user",
	})
}

// GetFollowers lists the users following the given user
func (h *UserHandler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, constants.ParamUserID)
	if !ok {
		utils.BadRequest(w, "Invalid user ID", nil)
		return
	}

	followers, err := h.userService.GetFollowers(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, followers)
}

// GetFollowing lists the users the given user follows
func (h *UserHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, constants.ParamUserID)
	if !ok {
		utils.BadRequest(w, "Invalid user ID", nil)
		return
	}

	following, err := h.userService.GetFollowing(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, following)
}

// GetSuggestions lists accounts the current user might want to follow
func (h *UserHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	suggestions, err := h.userService.GetSuggestions(r.Context(), userID, constants.DefaultSuggestionLimit)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, suggestions)
}
