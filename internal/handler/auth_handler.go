package handler

import (
	"context"

	"scheduling-api/internal/rpc"
)

func (h *Handler) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.RegisterResponse, error) {
	s, err := h.accounts.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, h.toStatus("Register", err)
	}
	return &rpc.RegisterResponse{UserId: s.UserID, Token: s.AccessToken, RefreshToken: s.RefreshToken}, nil
}

func (h *Handler) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	s, err := h.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, h.toStatus("Login", err)
	}
	return &rpc.LoginResponse{Token: s.AccessToken, UserId: s.UserID, Name: s.Name, RefreshToken: s.RefreshToken}, nil
}
