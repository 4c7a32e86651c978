package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	"bizdash/internal/core/version"
)

// Op documents one endpoint; modules call Document from their Register funcs
type Op struct {
	Method  string
	Path    string
	Tag     string
	Summary string
	// Query lists query parameter names
	Query []string
	// Body marks a JSON request body
	Body bool
}

var (
	mu  sync.RWMutex
	ops = map[string]Op{}
)

// Document records ops; a repeated method and path replaces the earlier entry
func Document(in ...Op) {
	mu.Lock()
	defer mu.Unlock()
	for _, op := range in {
		ops[strings.ToUpper(op.Method)+" "+op.Path] = op
	}
}

// Reset clears documented ops for tests
func Reset() {
	mu.Lock()
	ops = map[string]Op{}
	mu.Unlock()
}

// Spec assembles the OpenAPI document served to the UI
// operations from the generated swag document win; Document fills the rest
func Spec() map[string]any {
	mu.RLock()
	keys := make([]string, 0, len(ops))
	for k := range ops {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	list := make([]Op, 0, len(keys))
	for _, k := range keys {
		list = append(list, ops[k])
	}
	mu.RUnlock()

	spec, ok := generated()
	if !ok {
		spec = map[string]any{
			"info": map[string]any{
				"title":   "bizdash API",
				"version": version.Info().Version,
			},
		}
	}
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		paths = map[string]any{}
		spec["paths"] = paths
	}
	addOps(paths, list)
	ensureServers(spec, "/api/v1")
	ensureErrorResponseDefinition(spec)
	addDefaultResponses(spec)
	return spec
}

// generated parses the swag document; false when none is compiled in or it is unreadable
func generated() (map[string]any, bool) {
	raw, ok := docReader()
	if !ok {
		return nil, false
	}
	var spec map[string]any
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return nil, false
	}
	return spec, true
}

func addOps(paths map[string]any, list []Op) {
	for _, op := range list {
		node, ok := paths[op.Path].(map[string]any)
		if !ok {
			node = map[string]any{}
			paths[op.Path] = node
		}
		method := strings.ToLower(op.Method)
		if _, ok := node[method]; ok {
			continue
		}
		entry := map[string]any{
			"tags":    []any{op.Tag},
			"summary": op.Summary,
			"responses": map[string]any{
				"200": map[string]any{
					"description": "OK",
					"content": map[string]any{
						"application/json": map[string]any{
							"schema": map[string]any{"$ref": "#/components/schemas/Envelope"},
						},
					},
				},
			},
		}
		if len(op.Query) > 0 {
			params := make([]any, 0, len(op.Query))
			for _, q := range op.Query {
				params = append(params, map[string]any{
					"name":   q,
					"in":     "query",
					"schema": map[string]any{"type": "string"},
				})
			}
			entry["parameters"] = params
		}
		if op.Body {
			entry["requestBody"] = map[string]any{
				"required": true,
				"content": map[string]any{
					"application/json": map[string]any{"schema": map[string]any{"type": "object"}},
				},
			}
		}
		node[method] = entry
	}
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(Spec())
	}
}

// ensureServers pins the document to OAS 3.0.3; the UI cannot render 3.1
func ensureServers(spec map[string]any, url string) {
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

func schemas(spec map[string]any) map[string]any {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	s, ok := comps["schemas"].(map[string]any)
	if !ok {
		s = map[string]any{}
		comps["schemas"] = s
	}
	return s
}

// ensureErrorResponseDefinition adds the envelope models, mirroring the runtime wire
func ensureErrorResponseDefinition(spec map[string]any) {
	s := schemas(spec)
	base := map[string]any{
		"status_code": map[string]any{"type": "integer", "format": "int32"},
		"status":      map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	}
	if _, ok := s["Envelope"]; !ok {
		props := map[string]any{"data": map[string]any{}}
		for k, v := range base {
			props[k] = v
		}
		s["Envelope"] = map[string]any{"type": "object", "properties": props, "required": []any{"status_code", "status"}}
	}
	if _, ok := s["ErrorResponse"]; !ok {
		props := map[string]any{
			"code":  map[string]any{"type": "string"},
			"error": map[string]any{"type": "string"},
			"field": map[string]any{"type": "string"},
		}
		for k, v := range base {
			props[k] = v
		}
		s["ErrorResponse"] = map[string]any{
			"type":        "object",
			"description": "Standard error response",
			"properties":  props,
			"required":    []any{"status_code", "status", "code"},
		}
	}
}

func errorResponse(status int, code, msg string) map[string]any {
	return map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      http.StatusText(status),
					"code":        code,
					"error":       msg,
					"request_id":  "579f33bf50b1/abc-000001",
				},
			},
		},
	}
}

// addDefaultResponses injects 422 and 500 into every operation that lacks them
func addDefaultResponses(spec map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	defaults := map[string]any{
		"422": errorResponse(http.StatusUnprocessableEntity, "invalid_argument", "unsupported period identifier: LAST_QUARTER"),
		"500": errorResponse(http.StatusInternalServerError, "panic", "internal server error"),
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			resps, ok := op["responses"].(map[string]any)
			if !ok {
				resps = map[string]any{}
				op["responses"] = resps
			}
			for code, r := range defaults {
				if _, exists := resps[code]; !exists {
					resps[code] = r
				}
			}
		}
	}
}
