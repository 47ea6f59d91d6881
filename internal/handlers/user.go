package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type userProfileResponse struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	UserName      string `json:"userName"`
	EmailAddress  string `json:"emailAddress"`
	Country       string `json:"country"`
	AboutMe       string `json:"aboutMe"`
	DOB           string `json:"dob"`
	ContactNumber string `json:"contactNumber"`
}

func (h HandlerSet) UserProfile(c *gin.Context) {
	user, err := h.users.Profile(c.Request.Context(), bearerToken(c), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, userProfileResponse{
		ID:            user.UUID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		UserName:      user.Username,
		EmailAddress:  user.Email,
		Country:       user.Country,
		AboutMe:       user.AboutMe,
		DOB:           user.DOB,
		ContactNumber: user.ContactNumber,
	})
}

type deleteUserResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (h HandlerSet) DeleteUser(c *gin.Context) {
	userID := c.Param("userId")

	if err := h.users.Delete(c.Request.Context(), bearerToken(c), userID); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, deleteUserResponse{ID: userID, Status: "USER SUCCESSFULLY DELETED"})
}
