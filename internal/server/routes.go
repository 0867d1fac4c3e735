package server

import (
	"net/http"
	"time"

	"github.com/badnest/badnest2mqtt/internal/core/domain"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type serviceCallRequest struct {
	Target string         `json:"target"`
	Data   map[string]any `json:"data"`
}

type serviceErrorResponse struct {
	Kind    string `json:"kind"`
	Service string `json:"service"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type serviceFieldInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
	Selector    string `json:"selector"`
}

type serviceInfo struct {
	ID          string                      `json:"id"`
	Name        string                      `json:"name"`
	Description string                      `json:"description,omitempty"`
	Target      string                      `json:"target"`
	Fields      map[string]serviceFieldInfo `json:"fields,omitempty"`
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	if s.httpLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	e.GET("/healthcheck", s.HealthCheckHandler)
	e.GET("/api/services", s.ListServicesHandler)
	e.POST("/api/services/:domain/:service", s.CallServiceHandler)

	return e
}

func (s *Server) HealthCheckHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
	}
	if response, ok := res.(domain.ActorHealthResponse); ok && response.Healthy {
		return c.String(http.StatusOK, "health_check: OK")
	}
	return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
}

func (s *Server) ListServicesHandler(c echo.Context) error {
	defs := s.registry.All()
	services := make([]serviceInfo, 0, len(defs))
	for _, def := range defs {
		info := serviceInfo{
			ID:          def.ID,
			Name:        def.Name,
			Target:      def.Target.Domain,
			Description: def.Description,
		}
		if name, ok := s.catalog.ServiceName(def.ID); ok {
			info.Name = name
		}
		if desc, ok := s.catalog.ServiceDescription(def.ID); ok {
			info.Description = desc
		}
		if len(def.Fields) > 0 {
			info.Fields = make(map[string]serviceFieldInfo, len(def.Fields))
			for fieldName, spec := range def.Fields {
				fieldInfo := serviceFieldInfo{
					Name:        spec.Name,
					Description: spec.Description,
					Required:    spec.Required,
					Default:     spec.Default,
					Selector:    spec.Selector.Kind(),
				}
				if name, ok := s.catalog.FieldName(def.ID, fieldName); ok {
					fieldInfo.Name = name
				}
				if desc, ok := s.catalog.FieldDescription(def.ID, fieldName); ok {
					fieldInfo.Description = desc
				}
				info.Fields[fieldName] = fieldInfo
			}
		}
		services = append(services, info)
	}
	return c.JSON(http.StatusOK, services)
}

func (s *Server) CallServiceHandler(c echo.Context) error {
	serviceID := c.Param("service")
	if c.Param("domain") != domain.INTEGRATION_ID {
		return serviceErrorJSON(c, &domain.ServiceError{
			Kind:    domain.ErrorKindUnknownService,
			Service: serviceID,
		})
	}

	var req serviceCallRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, serviceErrorResponse{
			Kind:    "bad_request",
			Service: serviceID,
			Message: err.Error(),
		})
	}

	err := s.dispatcher.Invoke(c.Request().Context(), domain.ServiceCall{
		Service: serviceID,
		Target:  req.Target,
		Params:  req.Data,
	})
	if err != nil {
		if svcErr, ok := domain.AsServiceError(err); ok {
			return serviceErrorJSON(c, svcErr)
		}
		return c.JSON(http.StatusInternalServerError, serviceErrorResponse{
			Kind:    "internal_error",
			Service: serviceID,
			Message: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"result": "ok"})
}

func serviceErrorJSON(c echo.Context, svcErr *domain.ServiceError) error {
	return c.JSON(serviceErrorStatus(svcErr.Kind), serviceErrorResponse{
		Kind:    string(svcErr.Kind),
		Service: svcErr.Service,
		Field:   svcErr.Field,
		Message: svcErr.Error(),
	})
}

func serviceErrorStatus(kind domain.ServiceErrorKind) int {
	switch kind {
	case domain.ErrorKindUnknownService, domain.ErrorKindTargetMismatch:
		return http.StatusNotFound
	case domain.ErrorKindMissingRequiredField, domain.ErrorKindFieldOutOfRange,
		domain.ErrorKindInvalidFieldType, domain.ErrorKindUnknownField:
		return http.StatusBadRequest
	case domain.ErrorKindDownstreamFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
