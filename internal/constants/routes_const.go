package constants

// Base Routes
const (
	APIBasePath = "/api"
	HealthPath  = "/health"
	VersionPath = "/version"
)

// Authentication Routes
const (
	AuthBasePath           = "/api/auth"
	AuthRegisterPath       = "/api/auth/signup"
	AuthLoginPath          = "/api/auth/signin"
	AuthSocialLoginPath    = "/api/auth/social"
	AuthForgotPasswordPath = "/api/auth/forgot-password"
	AuthResetPasswordPath  = "/api/auth/reset-password"
	AuthVerifyPath         = "/api/auth/verify"
)

// User Routes
const (
	UsersBasePath          = "/api/users"
	UserDetailPath         = "/api/users/{userID}"
	UserPhotoPath          = "/api/users/{userID}/photo"
	UserFollowersPath      = "/api/users/{userID}/followers"
	UserFollowingPath      = "/api/users/{userID}/following"
	UserProfilePath        = "/api/users/me"
	UserProfilePhotoPath   = "/api/users/me/photo"
	UserChangePasswordPath = "/api/users/me/password"
	UserFollowPath         = "/api/users/me/follow"
	UserUnfollowPath       = "/api/users/me/unfollow"
	UserSuggestionsPath    = "/api/users/me/suggestions"
)

// Post Routes
const (
	PostsBasePath     = "/api/posts"
	PostsFeedPath     = "/api/posts/feed"
	PostsByUserPath   = "/api/posts/by/{userID}"
	PostDetailPath    = "/api/posts/{postID}"
	PostPhotoPath     = "/api/posts/{postID}/photo"
	PostLikePath      = "/api/posts/{postID}/like"
	PostUnlikePath    = "/api/posts/{postID}/unlike"
	PostCommentsPath  = "/api/posts/{postID}/comments"
	CommentDetailPath = "/api/posts/{postID}/comments/{commentID}"
)

// URL Parameters
const (
	ParamUserID    = "userID"
	ParamPostID    = "postID"
	ParamCommentID = "commentID"
)

// Query Parameters
const (
	QueryParamPage     = "page"
	QueryParamPageSize = "page_size"
)
