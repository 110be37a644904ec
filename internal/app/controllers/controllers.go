// Package controllers holds the HTTP handlers. Controllers bind and validate
// requests, delegate to services, and translate results into the standard
// response envelope.
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ravi1475/school-erp-backend/internal/app/services"
)

var validate = validator.New()

// Controllers bundles every controller for route registration.
type Controllers struct {
	Students     *StudentController
	Fees         *FeeController
	Certificates *CertificateController
	Auth         *AuthController
	Schools      *SchoolController
}

// NewControllers wires all controllers over the service layer.
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		Students:     NewStudentController(svcs.Students),
		Fees:         NewFeeController(svcs.Fees),
		Certificates: NewCertificateController(svcs.Certificates),
		Auth:         NewAuthController(svcs.Auth),
		Schools:      NewSchoolController(svcs.Schools),
	}
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
