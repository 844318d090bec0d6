package mocks

import (
	"github.com/stretchr/testify/mock"

	"boxoffice/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(input service.LoginInput) (*service.SessionToken, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionToken), args.Error(1)
}

func (m *MockAuthService) Refresh(tokenString string) (*service.SessionToken, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionToken), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}
