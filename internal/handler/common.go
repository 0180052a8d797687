package handler

import (
	"net/http"
	"strconv"
	"sync"

	apperrors "go-gin-comedy-tickets/pkg/app_errors"
	"go-gin-comedy-tickets/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var registerOnce sync.Once

// RegisterValidators 在 gin 的 validator 上註冊自訂規則，建立 router 前呼叫
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("notblank", validators.NotBlank)
		}
	})
}

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// parseShowID 解析路徑上的節目 uuid，失敗時已回應 400
func parseShowID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid show id",
		})
		return uuid.Nil, false
	}
	return id, true
}

// parseIntID 解析路徑上的數字 id，失敗時已回應 400
func parseIntID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid id",
		})
		return 0, false
	}
	return id, true
}

// handleError 依錯誤分類決定狀態碼；非預期錯誤不把細節回給客戶端
func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		log.Info("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.KindNotFound:
		log.Info("Not found")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.KindForbidden:
		log.Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperrors.KindUnauthenticated:
		log.Info("Unauthenticated")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func handleSuccess(c *gin.Context, data interface{}, statusCode int) {
	if data != nil {
		c.JSON(statusCode, data)
	} else {
		c.Status(statusCode)
	}
}
