package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"qanda/api/internal/apperr"
	"qanda/api/internal/config"
	"qanda/api/internal/repository"
	"qanda/api/internal/security"
	"qanda/api/internal/service"
)

type HandlerSet struct {
	log       zerolog.Logger
	cfg       *config.AppConfig
	db        *pgxpool.Pool
	auth      *service.AuthService
	questions *service.QuestionService
	users     *service.UserService
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cfg *config.AppConfig) HandlerSet {
	store := repository.NewStore(db)
	tokens := security.NewTokenIssuer(cfg.Security.TokenSecret)

	return HandlerSet{
		log:       log,
		cfg:       cfg,
		db:        db,
		auth:      service.NewAuthService(store, tokens, cfg.Security.TokenTTL, log),
		questions: service.NewQuestionService(store, log),
		users:     service.NewUserService(store, log),
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	user := router.Group("/user")
	user.POST("/signup", h.Signup)
	user.POST("/signin", h.Signin)
	user.POST("/signout", h.Signout)
	user.DELETE("/:userId", h.DeleteUser)

	router.GET("/userprofile/:userId", h.UserProfile)

	question := router.Group("/question")
	question.POST("/create", h.CreateQuestion)
	question.GET("/all", h.AllQuestions)
	question.PUT("/edit", h.EditQuestion)
	question.DELETE("/delete/:questionId", h.DeleteQuestion)
	question.GET("/all/:userId", h.QuestionsByUser)
}

// bearerToken returns the authorization header as-is; tolerate an optional
// Bearer prefix the way clients commonly send it.
func bearerToken(c *gin.Context) string {
	token := c.GetHeader("Authorization")
	return strings.TrimPrefix(token, "Bearer ")
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// fail translates a coded domain failure into its HTTP status. Anything
// without a code is an internal error.
func (h HandlerSet) fail(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("operation failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Code: "GEN-001", Message: "An unexpected error occurred"})
		return
	}

	c.JSON(statusFor(appErr.Code), errorResponse{Code: appErr.Code, Message: appErr.Message})
}

func statusFor(code string) int {
	switch code {
	case apperr.CodeUsernameTaken, apperr.CodeEmailTaken:
		return http.StatusConflict
	case apperr.CodeMalformedInput:
		return http.StatusBadRequest
	case apperr.CodeUnknownUsername, apperr.CodeBadCredentials,
		apperr.CodeNotSignedIn, apperr.CodeSignedOut:
		return http.StatusUnauthorized
	case apperr.CodeForbidden:
		return http.StatusForbidden
	case apperr.CodeUserNotFound, apperr.CodeQuestionNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
