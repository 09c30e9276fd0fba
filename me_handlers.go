package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type LoginReq struct {
	User       string `json:"user"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type MeResponse struct {
	User string `json:"user"`
}

type NameReq struct {
	Name string `json:"name"`
}

// POST /api/v1/login
func Login(sessions *Sessions, settings *Settings, password string, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		user := strings.TrimSpace(req.User)
		if user == "" || !settings.HasUser(user) {
			respondErr(c, ErrUnknownUser)
			return
		}
		if !Authenticate(req.Password, password) {
			respondErr(c, ErrBadPassword)
			return
		}

		// logging in again replaces the browser's previous session
		if prev, err := c.Cookie(sessionCookie); err == nil && prev != "" {
			sessions.Drop(prev)
		}
		sess := sessions.Create(user)
		setCookie(c, sessionCookie, sess.ID, 0, secureCookies)
		if req.RememberMe {
			setCookie(c, authCookie, authRemembered, rememberMaxAge, secureCookies)
			setCookie(c, userCookie, user, rememberMaxAge, secureCookies)
		}
		c.JSON(http.StatusOK, MeResponse{User: user})
	}
}

// POST /api/v1/logout
func Logout(sessions *Sessions, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions.Drop(sessionFrom(c).ID)
		clearAuthCookies(c, secureCookies)
		c.JSON(http.StatusOK, gin.H{"status": "logged out"})
	}
}

// GET /api/v1/me
func GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, MeResponse{User: sessionFrom(c).User()})
	}
}

/*** Settings: user names and categories ***/

// GET /api/v1/users (public: feeds the login picker)
func ListUserNames(settings *Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, settings.UserNames())
	}
}

func AddUserName(settings *Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NameReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		names, err := settings.AddUserName(c.Request.Context(), req.Name)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, names)
	}
}

// DELETE /api/v1/users/:name. Removing the caller's own name logs them out.
func DeleteUserName(sessions *Sessions, settings *Settings, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		names, err := settings.DeleteUserName(c.Request.Context(), name)
		if err != nil {
			respondErr(c, err)
			return
		}
		self := sessionFrom(c).User() == name
		sessions.DropUser(name)
		if self {
			clearAuthCookies(c, secureCookies)
		}
		c.JSON(http.StatusOK, gin.H{"userNames": names, "loggedOut": self})
	}
}

func ListCategories(settings *Settings, list *QuizList) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, settings.AllCategories(list.Categories()))
	}
}

func AddCategory(settings *Settings, list *QuizList) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NameReq
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
			return
		}
		settings.AddCategory(c.Request.Context(), req.Name)
		c.JSON(http.StatusOK, settings.AllCategories(list.Categories()))
	}
}
