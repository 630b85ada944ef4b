package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scheduling-api/internal/account"
	"scheduling-api/internal/auth"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

type sessionJSON struct {
	UserID       string `json:"userId"`
	Name         string `json:"name,omitempty"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// issue sets the httponly session cookies and returns the session body.
func (s *server) issue(c *gin.Context, code int, sess *account.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookie, sess.AccessToken, int(auth.AccessTTL.Seconds()), "/", "", s.secure, true)
	c.SetCookie(refreshCookie, sess.RefreshToken, int(auth.RefreshTTL.Seconds()), "/auth/", "", s.secure, true)
	c.JSON(code, sessionJSON{UserID: sess.UserID, Name: sess.Name, Token: sess.AccessToken, RefreshToken: sess.RefreshToken})
}

func (s *server) register(c *gin.Context) {
	var b struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&b); err != nil {
		s.badRequest(c, "invalid request payload")
		return
	}
	sess, err := s.accounts.Register(c.Request.Context(), b.Email, b.Password, b.Name)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.issue(c, http.StatusCreated, sess)
}

func (s *server) login(c *gin.Context) {
	var b struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&b); err != nil {
		s.badRequest(c, "invalid request payload")
		return
	}
	sess, err := s.accounts.Login(c.Request.Context(), b.Email, b.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.issue(c, http.StatusOK, sess)
}

// refresh reads the refresh token from the cookie, falling back to the body.
func (s *server) refresh(c *gin.Context) {
	raw, _ := c.Cookie(refreshCookie)
	if raw == "" {
		var b struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = c.ShouldBindJSON(&b)
		raw = b.RefreshToken
	}
	sess, err := s.accounts.Refresh(c.Request.Context(), raw)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.issue(c, http.StatusOK, sess)
}

func (s *server) logout(c *gin.Context) {
	bearer := c.GetHeader("Authorization")
	if bearer == "" {
		bearer, _ = c.Cookie(accessCookie)
	}
	if err := s.accounts.Logout(c.Request.Context(), bearer); err != nil {
		s.fail(c, err)
		return
	}
	c.SetCookie(accessCookie, "", -1, "/", "", s.secure, true)
	c.SetCookie(refreshCookie, "", -1, "/auth/", "", s.secure, true)
	c.Status(http.StatusNoContent)
}

func (s *server) me(c *gin.Context) {
	u, err := s.accounts.Me(c.Request.Context(), uid(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": u.ID, "email": u.Email, "name": u.Name, "createdAt": u.CreatedAt})
}
