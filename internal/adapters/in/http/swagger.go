package http

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

var registerSwaggerOnce sync.Once

// openAPIDoc serves a kin-openapi document through the swag registry.
type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

// registerSwagger publishes doc as the swag document and mounts the UI at
// /swagger/. swag keeps one process-wide registry, so the first document
// registered wins.
func registerSwagger(e *echo.Echo, doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	registerSwaggerOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc{json: string(data)})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
