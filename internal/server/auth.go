package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/syedfahimdev/omni-admin/internal/auth/domain"
)

type loginRequest struct {
	Password string `json:"password"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authSvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"session_id": result.Session.ID.String(),
		"created_at": result.Session.CreatedAt,
	}})
}

func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		s.authSvc.Logout(c.Request.Context(), token)
	}
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"logged_out": true}})
}

func (s *Server) GetSession(c *gin.Context) {
	token, ok := s.sessions.ReadToken(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	sess, ok := s.authSvc.Authenticate(c.Request.Context(), token)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"session_id": sess.ID.String(),
		"created_at": sess.CreatedAt,
	}})
}
