package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mrpproducao/internal/apierror"
	"mrpproducao/internal/middleware"
	"mrpproducao/internal/service"
)

type NotificacaoHandler struct {
	notificacoes service.NotificacaoService
}

func NewNotificacaoHandler(notificacoes service.NotificacaoService) *NotificacaoHandler {
	return &NotificacaoHandler{notificacoes: notificacoes}
}

func (h *NotificacaoHandler) Listar(c *gin.Context) {
	usuarioID, ok := usuarioFromClaims(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	resp, err := h.notificacoes.Listar(c.Request.Context(), usuarioID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificacaoHandler) MarcarLida(c *gin.Context) {
	usuarioID, ok := usuarioFromClaims(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.notificacoes.MarcarLida(c.Request.Context(), id, usuarioID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func usuarioFromClaims(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token invalido"))
		return uuid.Nil, false
	}
	return id, true
}
