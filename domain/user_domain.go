package domain

import (
	"github.com/google/uuid"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login success"
	MessageSuccessLogout         = "logout success"
	MessageSuccessGetUser        = "success get user"
	MessageSuccessGetUsers       = "success get users"
	MessageSuccessSetPassword    = "password changed successfully"
	MessageSuccessFollow         = "subscribed successfully"
	MessageSuccessUnfollow       = "unsubscribed successfully"
	MessageSuccessGetFollowing   = "success get subscriptions"
	MessageFailedRegister        = "failed to register user"
	MessageFailedLogin           = "failed to login"
	MessageFailedLogout          = "failed to logout"
	MessageFailedGetUser         = "failed to get user"
	MessageFailedGetUsers        = "failed to get users"
	MessageFailedSetPassword     = "failed to change password"
	MessageFailedFollow          = "failed to subscribe"
	MessageFailedUnfollow        = "failed to unsubscribe"
	MessageFailedGetSubscription = "failed to get subscriptions"

	ErrUserNotFound         = NewError(KindNotFound, "user not found")
	ErrInvalidCredentials   = NewError(KindAuthFailure, "email and password do not match")
	ErrAlreadyFollowing     = NewError(KindConflict, "you are already subscribed to this author")
	ErrNotFollowing         = NewError(KindNotPresent, "you are not subscribed to this author")
	ErrCannotFollowSelf     = NewError(KindSelfFollow, "you cannot subscribe to yourself")
	ErrCannotUnfollowSelf   = NewError(KindSelfFollow, "you cannot unsubscribe from yourself")
	ErrWrongCurrentPassword = NewError(KindValidation, "current password is incorrect")
)

// ReservedUsernames collide with route segments.
var ReservedUsernames = []string{"me", "token"}

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,max=150,username"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,max=150"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=150"`
	}

	LoginResponse struct {
		AuthToken string `json:"auth_token"`
	}

	SetPasswordRequest struct {
		NewPassword     string `json:"new_password" validate:"required,max=150"`
		CurrentPassword string `json:"current_password" validate:"required,max=150"`
	}

	User struct {
		ID           uuid.UUID `json:"id"`
		Email        string    `json:"email"`
		Username     string    `json:"username"`
		FirstName    string    `json:"first_name"`
		LastName     string    `json:"last_name"`
		IsSubscribed bool      `json:"is_subscribed"`
	}

	// FollowedAuthor is one entry of a subscription listing.
	FollowedAuthor struct {
		User
		Recipes      []RecipeShort `json:"recipes"`
		RecipesCount int64         `json:"recipes_count"`
	}

	SubscriptionsRequest struct {
		Pagination
		RecipesLimit int `json:"recipes_limit"`
	}
)
