package auth

import (
	"fmt"
	"time"

	"github.com/NathanHymers98/spacebar/database/models"
	"github.com/NathanHymers98/spacebar/database/repo/users"
	cryptopackage "github.com/NathanHymers98/spacebar/utils/crypto"
)

// TokenGenerator 为认证通过的用户签发访问令牌
type TokenGenerator func(username string, userID uint, role string) (string, time.Time, error)

// LoginResult 登录结果
type LoginResult struct {
	User              *models.User
	AccessToken       string
	AccessTokenExpiry time.Time
}

// LoginService 登录服务
type LoginService struct {
	usersRepo     *users.Repository
	generateToken TokenGenerator
}

// NewLoginService 创建新的登录服务
func NewLoginService(usersRepo *users.Repository, generateToken TokenGenerator) *LoginService {
	return &LoginService{
		usersRepo:     usersRepo,
		generateToken: generateToken,
	}
}

// ValidateCredentials 验证用户凭据
func (s *LoginService) ValidateCredentials(username, password string) (*models.User, bool, error) {
	user, err := s.usersRepo.GetByUsername(username)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, false, nil
	}

	ok, err := cryptopackage.ComparePasswordAndHash(password, user.Password)
	if err != nil {
		return nil, false, fmt.Errorf("password comparison failed: %w", err)
	}

	return user, ok, nil
}

// Login 执行登录操作
func (s *LoginService) Login(username, password string) (*LoginResult, error) {
	user, valid, err := s.ValidateCredentials(username, password)
	if err != nil {
		return nil, fmt.Errorf("failed to validate credentials: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("invalid credentials")
	}

	accessToken, accessTokenExpiry, err := s.generateToken(user.Username, user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{
		User:              user,
		AccessToken:       accessToken,
		AccessTokenExpiry: accessTokenExpiry,
	}, nil
}
