package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"

	"github.com/wahinekai/memberdb-backend/docs"
)

const (
	definitionsPrefix = "#/definitions/"
	schemasPrefix     = "#/components/schemas/"
	jsonMediaType     = "application/json"
)

// OpenAPIDocument is the OpenAPI 3.0 rendering of the swag document
type OpenAPIDocument struct {
	OpenAPI    string                 `json:"openapi"`
	Info       OpenAPIInfo            `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// OpenAPIInfo is the info block of an OpenAPI document
type OpenAPIInfo struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// OpenAPIHandler serves the API document for the servers this deployment answers on
type OpenAPIHandler struct {
	servers []Server
}

// NewOpenAPIHandler lists the local server on port and, when set, the public API URL
func NewOpenAPIHandler(port, publicURL string) *OpenAPIHandler {
	basePath := docs.SwaggerInfo.BasePath
	servers := []Server{{URL: "http://localhost:" + port + basePath, Description: "Local"}}
	if publicURL != "" {
		servers = append(servers, Server{URL: strings.TrimRight(publicURL, "/") + basePath, Description: "Public"})
	}
	return &OpenAPIHandler{servers: servers}
}

// ServeOpenAPI handles GET /openapi.json
func (h *OpenAPIHandler) ServeOpenAPI(c echo.Context) error {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return NewInternalError(c, "Failed to read API document")
	}

	var swagger2 map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &swagger2); err != nil {
		return NewInternalError(c, "Failed to parse API document")
	}

	return c.JSON(http.StatusOK, h.convert(swagger2))
}

func (h *OpenAPIHandler) convert(swagger2 map[string]interface{}) OpenAPIDocument {
	components := make(map[string]interface{})
	if schemes, ok := swagger2["securityDefinitions"].(map[string]interface{}); ok {
		components["securitySchemes"] = convertSecuritySchemes(schemes)
	}
	if definitions, ok := swagger2["definitions"].(map[string]interface{}); ok {
		components["schemas"] = rewriteRefs(definitions)
	}

	paths := make(map[string]interface{})
	if in, ok := swagger2["paths"].(map[string]interface{}); ok {
		for path, item := range in {
			ops, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			converted := make(map[string]interface{}, len(ops))
			for method, op := range ops {
				if opMap, ok := op.(map[string]interface{}); ok {
					converted[method] = convertOperation(opMap)
				}
			}
			paths[path] = converted
		}
	}

	return OpenAPIDocument{
		OpenAPI: "3.0.3",
		Info: OpenAPIInfo{
			Title:       docs.SwaggerInfo.Title,
			Description: docs.SwaggerInfo.Description,
			Version:     docs.SwaggerInfo.Version,
		},
		Servers:    h.servers,
		Paths:      paths,
		Components: components,
	}
}

// convertSecuritySchemes maps the swag bearer apiKey scheme to an HTTP bearer scheme
func convertSecuritySchemes(schemes map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(schemes))
	for name, scheme := range schemes {
		if name == "BearerAuth" {
			out[name] = map[string]interface{}{"type": "http", "scheme": "bearer", "bearerFormat": "JWT"}
			continue
		}
		out[name] = scheme
	}
	return out
}

// convertOperation moves body and form parameters into requestBody and wraps
// response schemas in a JSON media type
func convertOperation(op map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(op))
	for key, value := range op {
		switch key {
		case "parameters", "responses", "consumes", "produces":
		default:
			out[key] = value
		}
	}

	params, _ := op["parameters"].([]interface{})
	var converted []interface{}
	formFields := make(map[string]interface{})
	var requiredForm []interface{}
	for _, p := range params {
		param, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		switch param["in"] {
		case "body":
			out["requestBody"] = map[string]interface{}{
				"required": param["required"] == true,
				"content": map[string]interface{}{
					jsonMediaType: map[string]interface{}{"schema": rewriteRefs(param["schema"])},
				},
			}
		case "formData":
			name, _ := param["name"].(string)
			formFields[name] = formFieldSchema(param)
			if param["required"] == true {
				requiredForm = append(requiredForm, name)
			}
		default:
			converted = append(converted, convertParameter(param))
		}
	}
	if len(converted) > 0 {
		out["parameters"] = converted
	}
	if len(formFields) > 0 {
		schema := map[string]interface{}{"type": "object", "properties": formFields}
		if len(requiredForm) > 0 {
			schema["required"] = requiredForm
		}
		out["requestBody"] = map[string]interface{}{
			"required": len(requiredForm) > 0,
			"content": map[string]interface{}{
				"multipart/form-data": map[string]interface{}{"schema": schema},
			},
		}
	}

	if responses, ok := op["responses"].(map[string]interface{}); ok {
		out["responses"] = convertResponses(responses)
	}
	return out
}

func convertResponses(responses map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(responses))
	for code, r := range responses {
		resp, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		converted := map[string]interface{}{"description": resp["description"]}
		if schema, ok := resp["schema"]; ok {
			converted["content"] = map[string]interface{}{
				jsonMediaType: map[string]interface{}{"schema": rewriteRefs(schema)},
			}
		}
		out[code] = converted
	}
	return out
}

// convertParameter moves the Swagger 2.0 type fields of a path or query parameter into its schema
func convertParameter(param map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			out[field] = val
		}
	}

	schema := make(map[string]interface{})
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum", "items"} {
		if val, ok := param[field]; ok {
			schema[field] = rewriteRefs(val)
		}
	}
	if len(schema) > 0 {
		out["schema"] = schema
	}
	return out
}

func formFieldSchema(param map[string]interface{}) map[string]interface{} {
	if param["type"] == "file" {
		return map[string]interface{}{"type": "string", "format": "binary"}
	}
	schema := map[string]interface{}{"type": param["type"]}
	if desc, ok := param["description"]; ok {
		schema["description"] = desc
	}
	return schema
}

// rewriteRefs points every Swagger 2.0 definition reference at components/schemas
func rewriteRefs(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				out[key] = strings.Replace(ref, definitionsPrefix, schemasPrefix, 1)
				continue
			}
			out[key] = rewriteRefs(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = rewriteRefs(item)
		}
		return out
	default:
		return data
	}
}
