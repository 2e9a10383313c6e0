package services

import (
	"fmt"
	"time"

	"edujournal/internal/models"
	"edujournal/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService представляет сервис авторизации
type AuthService struct {
	userRepo    repository.UserRepository
	teacherRepo repository.TeacherRepository
	studentRepo repository.StudentRepository
	jwtSecret   string
	jwtTTL      time.Duration
}

// NewAuthService создает новый сервис авторизации
func NewAuthService(
	userRepo repository.UserRepository,
	teacherRepo repository.TeacherRepository,
	studentRepo repository.StudentRepository,
	jwtSecret string,
	jwtTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		teacherRepo: teacherRepo,
		studentRepo: studentRepo,
		jwtSecret:   jwtSecret,
		jwtTTL:      jwtTTL,
	}
}

// RegisterRequest представляет запрос на регистрацию
type RegisterRequest struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult представляет результат входа
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
	Role  string       `json:"role"`
}

// Register создает новую учетную запись. Повторное имя входа или email —
// ошибка валидации, а не конфликт хранилища.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidationFailed)
	}

	if _, err := s.userRepo.GetByUsername(req.Username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", ErrValidationFailed)
	}
	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrValidationFailed)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleStudent,
	}

	if err := s.userRepo.Create(user); err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("%w: username or email already taken", ErrValidationFailed)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login проверяет пароль и выдает JWT токен
func (s *AuthService) Login(username, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", ErrForbidden)
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{
		User:  user,
		Token: token,
		Role:  string(user.Role),
	}, nil
}

// ValidateToken валидирует JWT токен и возвращает пользователя
func (s *AuthService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return user, nil
}

// ResolveActor разрешает роль запроса один раз: загружает профили
// преподавателя и ученика, привязанные к учетной записи
func (s *AuthService) ResolveActor(user *models.User) (*Actor, error) {
	actor := &Actor{User: user}

	if teacher, err := s.teacherRepo.GetByUserID(user.ID); err == nil {
		actor.TeacherID = &teacher.ID
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("failed to resolve teacher profile: %w", err)
	}

	if student, err := s.studentRepo.GetByUserID(user.ID); err == nil {
		actor.StudentID = &student.ID
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("failed to resolve student profile: %w", err)
	}

	return actor, nil
}

// generateJWT генерирует JWT токен для пользователя
func (s *AuthService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(s.jwtTTL).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
