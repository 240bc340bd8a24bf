package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	. "taskmanager/internal/adapter/http/helper"
	. "taskmanager/internal/adapter/http/validation"
	"taskmanager/internal/core/model/request"
	"taskmanager/internal/core/model/response"
	"taskmanager/internal/core/port"
	"taskmanager/internal/core/util"
	"taskmanager/pkg/logger"
	. "taskmanager/pkg/tracing"
)

type AuthHandler struct {
	svc port.AuthService
	log *logger.Logger
}

func NewAuthHandler(svc port.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		svc: svc,
		log: log,
	}
}

func (a *AuthHandler) Register(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.auth.Register", []attribute.KeyValue{
		attribute.String("handler.operation", "Register"),
	})
	defer span.End()

	params, err := util.ParamsToStruct[request.RegisterRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	user, err := a.svc.Register(ctx, &params)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err, a.log)
		return
	}

	c.JSON(http.StatusCreated, response.RegisterResponse{
		Message: "User registered",
		User:    response.NewUserResponse(*user),
	})
}

func (a *AuthHandler) Login(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.auth.Login", []attribute.KeyValue{
		attribute.String("handler.operation", "Login"),
	})
	defer span.End()

	params, err := util.ParamsToStruct[request.LoginRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	token, err := a.svc.Authenticate(ctx, &params)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err, a.log)
		return
	}

	c.JSON(http.StatusOK, response.LoginResponse{AccessToken: token})
}
