package http

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var contractYAML []byte

// LoadContract parses and validates the embedded OpenAPI document.
func LoadContract() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(contractYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi contract: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi contract: %w", err)
	}
	return doc, nil
}

type swaggerDoc string

// ReadDoc serves the embedded contract to echo-swagger.
func (d swaggerDoc) ReadDoc() string {
	return string(d)
}

var registerOnce sync.Once

// registerContract makes the document available to the swagger UI handler.
// swag panics on double registration, hence the Once.
func registerContract(doc *openapi3.T) {
	registerOnce.Do(func() {
		raw, err := doc.MarshalJSON()
		if err != nil {
			return
		}
		swag.Register(swag.Name, swaggerDoc(raw))
	})
}
