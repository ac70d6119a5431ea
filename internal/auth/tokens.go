package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Lakshya5071/criminal-record-service/internal/database"
	"github.com/Lakshya5071/criminal-record-service/pkg/logger"
)

// Verifier checks admin tokens against the admin_tokens table. Tokens are
// opaque strings issued out of band; a row must exist and be active for the
// token to pass.
type Verifier struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVerifier(db *gorm.DB, baseLog *logger.Logger) *Verifier {
	return &Verifier{db: db, log: baseLog.With("component", "auth")}
}

// Verify reports whether token matches an active admin token. A valid token
// has its last-used timestamp bumped as a side effect.
func (v *Verifier) Verify(token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	var row database.AdminToken
	err := v.db.Where("token = ? AND is_active = ?", token, true).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	now := time.Now()
	if err := v.db.Model(&row).Update("last_used_at", &now).Error; err != nil {
		v.log.Warn("failed to record token use", "error", err)
	}
	return true, nil
}

// Issue creates and stores a new active admin token and returns it.
func (v *Verifier) Issue() (string, error) {
	token := uuid.NewString()
	row := database.AdminToken{Token: token, IsActive: true}
	if err := v.db.Create(&row).Error; err != nil {
		return "", err
	}
	v.log.Info("admin token issued", "token_id", row.ID)
	return token, nil
}

// RequireToken gates a route group on the admin_token query parameter: a
// missing token is unauthorized, a token that fails verification forbidden.
func (v *Verifier) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("admin_token")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "admin token required",
			})
			return
		}

		ok, err := v.Verify(token)
		if err != nil {
			v.log.Error("token verification failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal server error",
			})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "invalid admin token",
			})
			return
		}
		c.Next()
	}
}
