package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-marketplace-ddd/config"
	userapp "github.com/oksasatya/go-marketplace-ddd/internal/application"
	"github.com/oksasatya/go-marketplace-ddd/pkg/helpers"
	"github.com/oksasatya/go-marketplace-ddd/pkg/mailer"
	tpl "github.com/oksasatya/go-marketplace-ddd/pkg/mailer/templates"
	"github.com/oksasatya/go-marketplace-ddd/pkg/response"
	"github.com/oksasatya/go-marketplace-ddd/pkg/validation"
)

// AuthHandler owns the token-gated account flows: email verification,
// password reset, and the administrative status transitions.
type AuthHandler struct {
	Svc    *userapp.UserService
	RDB    *redis.Client
	Logger *logrus.Logger
	Cfg    *config.Config
	Pub    *helpers.RabbitPublisher
}

func NewAuthHandler(svc *userapp.UserService, rdb *redis.Client, logger *logrus.Logger, cfg *config.Config, pub *helpers.RabbitPublisher) *AuthHandler {
	return &AuthHandler{Svc: svc, RDB: rdb, Logger: logger, Cfg: cfg, Pub: pub}
}

func keyVerifyToken(t string) string { return "email:verify:token:" + t }
func keyResetToken(t string) string  { return "pwd:reset:token:" + t }

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func genToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (h *AuthHandler) audit(c *gin.Context, userID, email, action string, fields logrus.Fields) {
	if h.Logger == nil {
		return
	}
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["action"] = action
	fields["ip"] = clientIP(c)
	if userID != "" {
		fields["user_id"] = userID
	}
	if email != "" {
		fields["email"] = email
	}
	h.Logger.WithFields(fields).Info("audit")
}

// VerifyInit POST /api/auth/verify/init (auth required)
// Issues a verification token and emails a link embedding it.
func (h *AuthHandler) VerifyInit(c *gin.Context) {
	uid := c.GetString("userID")
	if uid == "" {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}
	if u.EmailVerified() {
		h.audit(c, uid, "", "verify_init_already", nil)
		response.Success(c, http.StatusOK, gin.H{"already_verified": true}, "already verified", nil)
		return
	}
	tok, err := genToken(32)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	if h.RDB != nil {
		h.RDB.Set(c.Request.Context(), keyVerifyToken(tok), uid, 24*time.Hour)
	}
	link := h.Cfg.VerifyEmailURL + "?token=" + tok
	h.audit(c, uid, "", "verify_init_issue", nil)

	if h.Pub != nil && h.Cfg.MailSendEnabled {
		ip := clientIP(c)
		resolver := tpl.IPAPIResolver{}
		data := tpl.NewVerifyEmailData(
			h.Cfg,
			"",
			u.Email().Value(),
			link,
			tpl.WithTime(time.Now()),
			tpl.WithExpiresIn(24*time.Hour),
			tpl.WithIP(ip),
			tpl.WithUserAgent(c.GetHeader("User-Agent")),
			tpl.WithGeoFromIP(c.Request.Context(), resolver, ip),
		)
		job := mailer.EmailJob{To: u.Email().Value(), Template: "universal", Data: data}
		_ = h.Pub.PublishJSON(c.Request.Context(), job)
	}

	response.Success(c, http.StatusOK, gin.H{"verify_link": link}, "verification link", nil)
}

// VerifyConfirm POST /api/auth/verify/confirm {token}
func (h *AuthHandler) VerifyConfirm(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if h.RDB == nil {
		response.Error[any](c, http.StatusInternalServerError, "verification unavailable", nil)
		return
	}
	uid, err := h.RDB.Get(c.Request.Context(), keyVerifyToken(req.Token)).Result()
	if err != nil || uid == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid or expired token", nil)
		return
	}
	if _, err := h.Svc.VerifyEmail(c.Request.Context(), uid); err != nil {
		writeError(c, err)
		return
	}
	h.RDB.Del(c.Request.Context(), keyVerifyToken(req.Token))
	h.audit(c, uid, "", "verify_confirm", nil)
	response.Success[any](c, http.StatusOK, gin.H{"verified": true}, "email verified", nil)
}

// ResetInit POST /api/auth/reset/init {email}
// Always returns OK to avoid account enumeration.
func (h *AuthHandler) ResetInit(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.GetUserByEmail(c.Request.Context(), req.Email)
	if err == nil && h.RDB != nil {
		tok, tErr := genToken(32)
		if tErr != nil {
			response.Error[any](c, http.StatusInternalServerError, "token generation failed", nil)
			return
		}
		h.RDB.Set(c.Request.Context(), keyResetToken(tok), u.ID(), 30*time.Minute)
		link := h.Cfg.ResetPasswordURL + "?token=" + tok
		if h.Pub != nil && h.Cfg.MailSendEnabled {
			ip := clientIP(c)
			resolver := tpl.IPAPIResolver{}
			data := tpl.NewForgotPasswordData(
				h.Cfg,
				"",
				u.Email().Value(),
				u.Email().Value(),
				tpl.WithTime(time.Now()),
				tpl.WithResetURL(link),
				tpl.WithExpiresIn(30*time.Minute),
				tpl.WithIP(ip),
				tpl.WithUserAgent(c.GetHeader("User-Agent")),
				tpl.WithGeoFromIP(c.Request.Context(), resolver, ip),
			)
			job := mailer.EmailJob{To: u.Email().Value(), Template: "universal", Data: data}
			_ = h.Pub.PublishJSON(c.Request.Context(), job)
		}
		h.audit(c, u.ID(), req.Email, "reset_init_issue", nil)
	} else {
		h.audit(c, "", req.Email, "reset_init_unknown", nil)
	}
	response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "reset link sent if the account exists", nil)
}

// ResetConfirm POST /api/auth/reset/confirm {token, new_password}
func (h *AuthHandler) ResetConfirm(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,pwd"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if h.RDB == nil {
		response.Error[any](c, http.StatusInternalServerError, "reset unavailable", nil)
		return
	}
	uid, err := h.RDB.Get(c.Request.Context(), keyResetToken(req.Token)).Result()
	if err != nil || uid == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid or expired token", nil)
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), uid, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	h.RDB.Del(c.Request.Context(), keyResetToken(req.Token))
	h.audit(c, uid, "", "reset_confirm", nil)
	response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password updated", nil)
}

// Administrative status transitions. Illegal moves (for example activating
// a banned account) surface as 409s through writeError.

func (h *AuthHandler) Suspend(c *gin.Context) {
	h.statusTransition(c, "suspend", h.Svc.Suspend)
}

func (h *AuthHandler) Ban(c *gin.Context) {
	h.statusTransition(c, "ban", h.Svc.Ban)
}

func (h *AuthHandler) Reactivate(c *gin.Context) {
	h.statusTransition(c, "reactivate", h.Svc.Reactivate)
}

func (h *AuthHandler) Deactivate(c *gin.Context) {
	h.statusTransition(c, "deactivate", h.Svc.Deactivate)
}

func (h *AuthHandler) statusTransition(c *gin.Context, action string, fn func(context.Context, string) error) {
	id := c.Param("id")
	if err := fn(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.audit(c, id, "", "user_"+action, nil)
	response.Success[any](c, http.StatusOK, gin.H{"id": id, "action": action}, "status updated", nil)
}
