package handlers

import (
	"net/http"

	"github.com/openfeed/openfeed-backend/internal/auth"
	"github.com/openfeed/openfeed-backend/internal/constants"
	"github.com/openfeed/openfeed-backend/internal/models"
	"github.com/openfeed/openfeed-backend/internal/utils"
)

// PostHandler handles post, like and comment routes
type PostHandler struct {
	postService PostServiceInterface
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService PostServiceInterface) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// CreatePost publishes a new post authored by the current user
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	// Decode and validate the request body
	var create models.PostCreate
	if err := utils.DecodeAndValidate(r, &create); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	post, err := h.postService.CreatePost(r.Context(), userID, &create)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusCreated, post)
}

// GetPost returns a post with its author name and counters
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, constants.ParamPostID)
	if !ok {
		utils.BadRequest(w, "Invalid post ID", nil)
		return
	}

	post, err := h.postService.GetPostByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, post)
}

// ListPosts returns a page of all posts, newest first
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	params := utils.GetPaginationParams(r)

	posts, total, err := h.postService.ListPosts(r.Context(), params.Page, params.PageSize)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Paginated(w, constants.StatusOK, posts, params.Page, params.PageSize, total)
}

// ListPostsByUser returns a page of posts written by the given user
func (h *PostHandler) ListPostsByUser(w http.ResponseWriter, r *http.Request) {
	authorID, ok := pathID(r, constants.ParamUserID)
	if !ok {
		utils.BadRequest(w, "Invalid user ID", nil)
		return
	}

	params := utils.GetPaginationParams(r)

	posts, total, err := h.postService.ListPostsByAuthor(r.Context(), authorID, params.Page, params.PageSize)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Paginated(w, constants.StatusOK, posts, params.Page, params.PageSize, total)
}

// GetFeed returns a page of posts from the current user and the users
// they follow
func (h *PostHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	params := utils.GetPaginationParams(r)

	posts, total, err := h.postService.GetFeed(r.Context(), userID, params.Page, params.PageSize)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Paginated(w, constants.StatusOK, posts, params.Page, params.PageSize, total)
}

// UpdatePost updates a post's title and body
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	// Get the user ID and role from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}
	role, _ := auth.GetRole(r)

	id, ok := pathID(r, constants.ParamPostID)
	if !ok {
		utils.BadRequest(w, "Invalid post ID", nil)
		return
	}

	// Decode and validate the request body
	var update models.PostUpdate
	if err := utils.DecodeAndValidate(r, &update); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	post, err := h.postService.UpdatePost(r.Context(), id, userID, role, &update)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, post)
}

// DeletePost removes a post
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	// Get the user ID and role from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}
	role, _ := auth.GetRole(r)

	id, ok := pathID(r, constants.ParamPostID)
	if !ok {
		utils.BadRequest(w, "Invalid post ID", nil)
		return
	}

	if err := h.postService.DeletePost(r.Context(), id, userID, role); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.NoContent(w)
}

// LikePost records that the current user liked a post
func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	id, ok := pathID(r, constants.ParamPostID)
	if !ok {
		utils.BadRequest(w, "Invalid post ID", nil)
		return
	}

	if err := h.postService.LikePost(r.Context(), id, userID); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusCreated, map[string]interface{}{
		"message": "Post liked",
	})
}

// UnlikePost removes the current user's like from a post
func (h *PostHandler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	id, ok := pathID(r, constants.ParamPostID)
	if !ok {
		utils.BadRequest(w, "Invalid post ID", nil)
		return
	}

	if err := h.postService.UnlikePost(r.Context(), id, userID); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, map[string]interface{}{
		"message": "Like removed",
	})
}

// GetPostPhoto serves a post's photo with its stored content type
func (h *PostHandler) GetPostPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, constants.ParamPostID)
	if !ok {
		utils.BadRequest(w, "Invalid post ID", nil)
		return
	}

	photo, contentType, err := h.postService.GetPhoto(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Photo(w, photo, contentType)
}

// UpdatePostPhoto stores a new photo for a post
func (h *PostHandler) UpdatePostPhoto(w http.ResponseWriter, r *http.Request) {
	// Get the user ID and role from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}
	role, _ := auth.GetRole(r)

	id, ok := pathID(r, constants.ParamPostID)
	if !ok {
		utils.BadRequest(w, "Invalid post ID", nil)
		return
	}

	photo, contentType, ok := readPhoto(w, r)
	if !ok {
		return
	}

	if err := h.postService.UpdatePhoto(r.Context(), id, userID, role, photo, contentType); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, map[string]interface{}{
		"message": "Photo successfully updated",
	})
}

// AddComment adds a comment to a post
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	id, ok := pathID(r, constants.ParamPostID)
	if !ok {
		utils.BadRequest(w, "Invalid post ID", nil)
		return
	}

	// Decode and validate the request body
	var create models.CommentCreate
	if err := utils.DecodeAndValidate(r, &create); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	comment, err := h.postService.AddComment(r.Context(), id, userID, &create)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusCreated, comment)
}

// ListComments returns the comments on a post, oldest first
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, constants.ParamPostID)
	if !ok {
		utils.BadRequest(w, "Invalid post ID", nil)
		return
	}

	comments, err := h.postService.ListComments(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, comments)
}

// DeleteComment removes a comment from a post
func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	// Get the user ID and role from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}
	role, _ := auth.GetRole(r)

	commentID, ok := pathID(r, constants.ParamCommentID)
	if !ok {
		utils.BadRequest(w, "Invalid comment ID", nil)
		return
	}

	if err := h.postService.DeleteComment(r.Context(), commentID, userID, role); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.NoContent(w)
}
