package handler

import (
	"github.com/deppfellow/social-scores/internal/schema"
	"github.com/deppfellow/social-scores/internal/validation"
)

// EmptyRequest is used by endpoints that read nothing from the request.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// ------------------------------------------------------------
// auth

type RegisterRequest struct {
	schema.SupervisorCreate
}

func (r *RegisterRequest) DecodeRaw(raw map[string]any) error {
	in, err := schema.ParseSupervisorCreate(raw)
	r.SupervisorCreate = in
	return err
}

func (r *RegisterRequest) Validate() error {
	return nil
}

// LoginRequest accepts a JSON body or an HTML form.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

type ChangePasswordRequest struct {
	schema.SupervisorUpdate
}

func (r *ChangePasswordRequest) DecodeRaw(raw map[string]any) error {
	in, err := schema.ParseSupervisorUpdate(raw)
	r.SupervisorUpdate = in
	return err
}

func (r *ChangePasswordRequest) Validate() error {
	return nil
}

// ------------------------------------------------------------
// users

type CreateUserRequest struct {
	schema.UserCreate
}

func (r *CreateUserRequest) DecodeRaw(raw map[string]any) error {
	in, err := schema.ParseUserCreate(raw)
	r.UserCreate = in
	return err
}

func (r *CreateUserRequest) Validate() error {
	return nil
}

type UserPathRequest struct {
	UserID int64 `param:"user_id" validate:"gt=0"`
}

func (r *UserPathRequest) Validate() error {
	return validation.Struct(r)
}

// ------------------------------------------------------------
// social networks

type CreateSocialNetworkRequest struct {
	UserID int64 `param:"user_id" validate:"gt=0"`
	schema.SocialNetworkCreate
}

func (r *CreateSocialNetworkRequest) DecodeRaw(raw map[string]any) error {
	in, err := schema.ParseSocialNetworkCreate(raw)
	r.SocialNetworkCreate = in
	return err
}

func (r *CreateSocialNetworkRequest) Validate() error {
	return validation.Struct(r)
}

type SocialNetworkPathRequest struct {
	SocialNetworkID int64 `param:"social_network_id" validate:"gt=0"`
}

func (r *SocialNetworkPathRequest) Validate() error {
	return validation.Struct(r)
}

// ------------------------------------------------------------
// scores

type CreateScoreRequest struct {
	SocialNetworkID int64 `param:"social_network_id" validate:"gt=0"`
	schema.ScoreCreate
}

func (r *CreateScoreRequest) DecodeRaw(raw map[string]any) error {
	in, err := schema.ParseScoreCreate(raw)
	r.ScoreCreate = in
	return err
}

func (r *CreateScoreRequest) Validate() error {
	return validation.Struct(r)
}
