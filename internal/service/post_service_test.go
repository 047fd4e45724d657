package service

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"testing"

	"github.com/openfeed/openfeed-backend/internal/constants"
	"github.com/openfeed/openfeed-backend/internal/models"
	"github.com/openfeed/openfeed-backend/internal/utils"
)

// MockPostRepository keeps posts and likes in memory
type MockPostRepository struct {
	posts      map[int64]*models.Post
	likes      map[[2]int64]bool
	follows    *MockFollowRepository
	nextID     int64
	photos     map[int64][]byte
	photoTypes map[int64]string
}

func NewMockPostRepository(follows *MockFollowRepository) *MockPostRepository {
	return &MockPostRepository{
		posts:      make(map[int64]*models.Post),
		likes:      make(map[[2]int64]bool),
		follows:    follows,
		nextID:     1,
		photos:     make(map[int64][]byte),
		photoTypes: make(map[int64]string),
	}
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	post.ID = m.nextID
	m.nextID++
	m.posts[post.ID] = post
	return nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, utils.NewNotFoundError("Post", id)
	}

	copied := *post
	for like := range m.likes {
		if like[0] == id {
			copied.LikeCount++
		}
	}
	return &copied, nil
}

func (m *MockPostRepository) sorted() []*models.Post {
	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	return posts
}

func (m *MockPostRepository) List(ctx context.Context, page, pageSize int) ([]*models.Post, int, error) {
	posts := m.sorted()
	return posts, len(posts), nil
}

func (m *MockPostRepository) ListByAuthor(ctx context.Context, authorID int64, page, pageSize int) ([]*models.Post, int, error) {
	var posts []*models.Post
	for _, post := range m.sorted() {
		if post.AuthorID == authorID {
			posts = append(posts, post)
		}
	}
	return posts, len(posts), nil
}

func (m *MockPostRepository) Feed(ctx context.Context, userID int64, page, pageSize int) ([]*models.Post, int, error) {
	var posts []*models.Post
	for _, post := range m.sorted() {
		if post.AuthorID == userID || m.follows.edges[[2]int64{userID, post.AuthorID}] {
			posts = append(posts, post)
		}
	}
	return posts, len(posts), nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	if _, ok := m.posts[post.ID]; !ok {
		return utils.NewNotFoundError("Post", post.ID)
	}
	m.posts[post.ID] = post
	return nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.posts[id]; !ok {
		return utils.NewNotFoundError("Post", id)
	}
	delete(m.posts, id)
	return nil
}

func (m *MockPostRepository) Like(ctx context.Context, postID, userID int64) error {
	if _, ok := m.posts[postID]; !ok {
		return utils.NewNotFoundError("Post", postID)
	}
	key := [2]int64{postID, userID}
	if m.likes[key] {
		return utils.NewDuplicateError("Like", "post_id", postID)
	}
	m.likes[key] = true
	return nil
}

func (m *MockPostRepository) Unlike(ctx context.Context, postID, userID int64) error {
	delete(m.likes, [2]int64{postID, userID})
	return nil
}

func (m *MockPostRepository) GetPhoto(ctx context.Context, id int64) ([]byte, string, error) {
	photo, ok := m.photos[id]
	if !ok {
		return nil, "", utils.NewNotFoundError("PostPhoto", id)
	}
	return photo, m.photoTypes[id], nil
}

func (m *MockPostRepository) UpdatePhoto(ctx context.Context, id int64, photo []byte, contentType string) error {
	if _, ok := m.posts[id]; !ok {
		return utils.NewNotFoundError("Post", id)
	}
	m.photos[id] = photo
	m.photoTypes[id] = contentType
	return nil
}

// MockCommentRepository keeps comments in memory
type MockCommentRepository struct {
	comments map[int64]*models.Comment
	posts    *MockPostRepository
	nextID   int64
}

func NewMockCommentRepository(posts *MockPostRepository) *MockCommentRepository {
	return &MockCommentRepository{
		comments: make(map[int64]*models.Comment),
		posts:    posts,
		nextID:   1,
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if _, ok := m.posts.posts[comment.PostID]; !ok {
		return utils.NewNotFoundError("Post", comment.PostID)
	}
	comment.ID = m.nextID
	m.nextID++
	m.comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	comment, ok := m.comments[id]
	if !ok {
		return nil, utils.NewNotFoundError("Comment", id)
	}
	return comment, nil
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if _, ok := m.comments[comment.ID]; !ok {
		return utils.NewNotFoundError("Comment", comment.ID)
	}
	m.comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.comments[id]; !ok {
		return utils.NewNotFoundError("Comment", id)
	}
	delete(m.comments, id)
	return nil
}

func newTestPostService() (*PostService, *MockPostRepository, *MockFollowRepository) {
	userRepo := NewMockUserRepository()
	followRepo := NewMockFollowRepository(userRepo)
	postRepo := NewMockPostRepository(followRepo)
	commentRepo := NewMockCommentRepository(postRepo)
	return NewPostService(postRepo, commentRepo), postRepo, followRepo
}

func seedPost(t *testing.T, service *PostService, authorID int64, title string) *models.Post {
	t.Helper()

	post, err := service.CreatePost(context.Background(), authorID, &models.PostCreate{
		Title: title,
		Body:  "Body text long enough to pass validation",
	})
	if err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return post
}

func TestCreatePost(t *testing.T) {
	service, _, _ := newTestPostService()

	post, err := service.CreatePost(context.Background(), 1, &models.PostCreate{
		Title: "First post",
		Body:  "Hello from the test suite",
	})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	if post.ID == 0 {
		t.Error("Expected post ID to be set")
	}

	if post.AuthorID != 1 {
		t.Errorf("Expected author ID 1, got %d", post.AuthorID)
	}
}

func TestGetPostByID_NotFound(t *testing.T) {
	service, _, _ := newTestPostService()

	_, err := service.GetPostByID(context.Background(), 999)
	if err == nil {
		t.Fatal("Expected error for unknown post")
	}

	if !utils.IsNotFoundError(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestGetFeed(t *testing.T) {
	service, _, followRepo := newTestPostService()

	// User 1 follows user 2 but not user 3
	followRepo.edges[[2]int64{1, 2}] = true

	seedPost(t, service, 1, "Own post")
	seedPost(t, service, 2, "Followed post")
	seedPost(t, service, 3, "Stranger post")

	feed, total, err := service.GetFeed(context.Background(), 1, 1, 10)
	if err != nil {
		t.Fatalf("GetFeed() error = %v", err)
	}

	// The feed contains the user's own posts plus followed authors' posts
	if total != 2 || len(feed) != 2 {
		t.Fatalf("Expected 2 feed posts, got %d (total %d)", len(feed), total)
	}

	for _, post := range feed {
		if post.AuthorID == 3 {
			t.Error("Expected no posts from unfollowed authors")
		}
	}
}

func TestUpdatePost(t *testing.T) {
	service, _, _ := newTestPostService()
	post := seedPost(t, service, 1, "Original title")

	updated, err := service.UpdatePost(context.Background(), post.ID, 1, constants.RoleSubscriber, &models.PostUpdate{
		Title: "Updated title",
	})
	if err != nil {
		t.Fatalf("UpdatePost() error = %v", err)
	}

	if updated.Title != "Updated title" {
		t.Errorf("Expected updated title, got %q", updated.Title)
	}

	// Omitted body stays untouched
	if updated.Body != post.Body {
		t.Error("Expected body to stay untouched")
	}
}

func TestUpdatePost_NotAuthor(t *testing.T) {
	service, _, _ := newTestPostService()
	post := seedPost(t, service, 1, "Original title")

	_, err := service.UpdatePost(context.Background(), post.ID, 2, constants.RoleSubscriber, &models.PostUpdate{
		Title: "Hijacked title",
	})
	if err == nil {
		t.Fatal("Expected error when a non-author updates a post")
	}

	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", appErr.StatusCode)
	}
}

func TestUpdatePost_AdminOverride(t *testing.T) {
	service, _, _ := newTestPostService()
	post := seedPost(t, service, 1, "Original title")

	// An admin can edit any post
	_, err := service.UpdatePost(context.Background(), post.ID, 2, constants.RoleAdmin, &models.PostUpdate{
		Title: "Moderated title",
	})
	if err != nil {
		t.Fatalf("UpdatePost() error = %v", err)
	}
}

func TestDeletePost(t *testing.T) {
	service, _, _ := newTestPostService()
	post := seedPost(t, service, 1, "Doomed post")

	if err := service.DeletePost(context.Background(), post.ID, 1, constants.RoleSubscriber); err != nil {
		t.Fatalf("DeletePost() error = %v", err)
	}

	if _, err := service.GetPostByID(context.Background(), post.ID); err == nil {
		t.Error("Expected deleted post to be gone")
	}
}

func TestDeletePost_NotAuthor(t *testing.T) {
	service, _, _ := newTestPostService()
	post := seedPost(t, service, 1, "Protected post")

	err := service.DeletePost(context.Background(), post.ID, 2, constants.RoleSubscriber)
	if err == nil {
		t.Fatal("Expected error when a non-author deletes a post")
	}
}

func TestLikePost(t *testing.T) {
	service, _, _ := newTestPostService()
	post := seedPost(t, service, 1, "Likeable post")

	if err := service.LikePost(context.Background(), post.ID, 2); err != nil {
		t.Fatalf("LikePost() error = %v", err)
	}

	// Liking the same post twice is rejected
	err := service.LikePost(context.Background(), post.ID, 2)
	if err == nil {
		t.Fatal("Expected error on duplicate like")
	}
	if !utils.IsDuplicateError(err) {
		t.Errorf("Expected duplicate error, got %v", err)
	}

	fetched, err := service.GetPostByID(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("GetPostByID() error = %v", err)
	}
	if fetched.LikeCount != 1 {
		t.Errorf("Expected like count 1, got %d", fetched.LikeCount)
	}
}

func TestUnlikePost(t *testing.T) {
	service, _, _ := newTestPostService()
	post := seedPost(t, service, 1, "Likeable post")

	if err := service.LikePost(context.Background(), post.ID, 2); err != nil {
		t.Fatalf("LikePost() error = %v", err)
	}

	if err := service.UnlikePost(context.Background(), post.ID, 2); err != nil {
		t.Fatalf("UnlikePost() error = %v", err)
	}

	// Unliking a post that was never liked is a no-op
	if err := service.UnlikePost(context.Background(), post.ID, 3); err != nil {
		t.Errorf("Expected no-op unlike, got %v", err)
	}
}

func TestAddComment(t *testing.T) {
	service, _, _ := newTestPostService()
	post := seedPost(t, service, 1, "Commented post")

	comment, err := service.AddComment(context.Background(), post.ID, 2, &models.CommentCreate{
		Text: "Nice post",
	})
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	if comment.ID == 0 || comment.PostID != post.ID || comment.AuthorID != 2 {
		t.Errorf("Unexpected comment: %+v", comment)
	}
}

func TestAddComment_UnknownPost(t *testing.T) {
	service, _, _ := newTestPostService()

	_, err := service.AddComment(context.Background(), 999, 2, &models.CommentCreate{
		Text: "Orphan comment",
	})
	if err == nil {
		t.Fatal("Expected error for unknown post")
	}

	if !utils.IsNotFoundError(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestListComments(t *testing.T) {
	service, _, _ := newTestPostService()
	post := seedPost(t, service, 1, "Commented post")

	for _, text := range []string{"First comment", "Second comment"} {
		if _, err := service.AddComment(context.Background(), post.ID, 2, &models.CommentCreate{Text: text}); err != nil {
			t.Fatalf("AddComment() error = %v", err)
		}
	}

	comments, err := service.ListComments(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}

	// Oldest first
	if len(comments) != 2 || comments[0].Text != "First comment" {
		t.Errorf("Expected 2 comments oldest first, got %v", comments)
	}
}

func TestListComments_UnknownPost(t *testing.T) {
	service, _, _ := newTestPostService()

	_, err := service.ListComments(context.Background(), 999)
	if err == nil {
		t.Fatal("Expected error for unknown post")
	}
}

func TestDeleteComment(t *testing.T) {
	service, _, _ := newTestPostService()
	post := seedPost(t, service, 1, "Commented post")

	comment, err := service.AddComment(context.Background(), post.ID, 2, &models.CommentCreate{
		Text: "Regretted comment",
	})
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	// A third user cannot delete someone else's comment
	if err := service.DeleteComment(context.Background(), comment.ID, 3, constants.RoleSubscriber); err == nil {
		t.Fatal("Expected error when a non-author deletes a comment")
	}

	// The comment's author can
	if err := service.DeleteComment(context.Background(), comment.ID, 2, constants.RoleSubscriber); err != nil {
		t.Fatalf("DeleteComment() error = %v", err)
	}
}

func TestDeleteComment_PostOwner(t *testing.T) {
	service, _, _ := newTestPostService()
	post := seedPost(t, service, 1, "Commented post")

	comment, err := service.AddComment(context.Background(), post.ID, 2, &models.CommentCreate{
		Text: "Unwelcome comment",
	})
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	// The owner of the post can remove comments left on it
	if err := service.DeleteComment(context.Background(), comment.ID, 1, constants.RoleSubscriber); err != nil {
		t.Fatalf("DeleteComment() error = %v", err)
	}

	if _, err := service.ListComments(context.Background(), post.ID); err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}
}

func TestDeleteComment_AdminOverride(t *testing.T) {
	service, _, _ := newTestPostService()
	post := seedPost(t, service, 1, "Commented post")

	comment, err := service.AddComment(context.Background(), post.ID, 2, &models.CommentCreate{
		Text: "Moderated comment",
	})
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	if err := service.DeleteComment(context.Background(), comment.ID, 3, constants.RoleAdmin); err != nil {
		t.Fatalf("DeleteComment() error = %v", err)
	}
}

func TestPostPhoto(t *testing.T) {
	service, _, _ := newTestPostService()
	post := seedPost(t, service, 1, "Illustrated post")

	photo := []byte{0x89, 0x50, 0x4E, 0x47}

	// Only the author or an admin may attach a photo
	if err := service.UpdatePhoto(context.Background(), post.ID, 2, constants.RoleSubscriber, photo, "image/png"); err == nil {
		t.Fatal("Expected error when a non-author attaches a photo")
	}

	if err := service.UpdatePhoto(context.Background(), post.ID, 1, constants.RoleSubscriber, photo, "image/png"); err != nil {
		t.Fatalf("UpdatePhoto() error = %v", err)
	}

	stored, contentType, err := service.GetPhoto(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("GetPhoto() error = %v", err)
	}

	if string(stored) != string(photo) || contentType != "image/png" {
		t.Error("Expected stored photo bytes and content type to round-trip")
	}
}
