package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qanda/api/internal/service"
)

type signupRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	UserName      string `json:"userName" binding:"required"`
	EmailAddress  string `json:"emailAddress" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	Country       string `json:"country"`
	AboutMe       string `json:"aboutMe"`
	DOB           string `json:"dob"`
	ContactNumber string `json:"contactNumber"`
}

type signupResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (h HandlerSet) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Code: "GEN-001", Message: err.Error()})
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), service.SignupInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Username:      req.UserName,
		Email:         req.EmailAddress,
		Password:      req.Password,
		Country:       req.Country,
		AboutMe:       req.AboutMe,
		DOB:           req.DOB,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, signupResponse{ID: user.UUID, Status: "USER SUCCESSFULLY REGISTERED"})
}

type signinResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (h HandlerSet) Signin(c *gin.Context) {
	session, err := h.auth.Signin(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("access_token", session.AccessToken)
	c.JSON(http.StatusOK, signinResponse{ID: session.User.UUID, Message: "SIGNED IN SUCCESSFULLY"})
}

func (h HandlerSet) Signout(c *gin.Context) {
	user, err := h.auth.Signout(c.Request.Context(), bearerToken(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, signinResponse{ID: user.UUID, Message: "SIGNED OUT SUCCESSFULLY"})
}
