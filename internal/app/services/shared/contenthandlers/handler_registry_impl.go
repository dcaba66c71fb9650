package contenthandlers

import (
	"sync"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"
)

// DefaultHandlerName is the registration name of the unstructured handler.
const DefaultHandlerName = "unstructured"

type codePair struct {
	typeCode     string
	typeScheme   string
	formatCode   string
	formatScheme string
}

type registration struct {
	name    string
	handler contracts.ContentHandler
}

// handlerRegistry is a concurrency safe map of content handlers. The default
// unstructured handler is fixed at construction; discrete handlers register
// per (type code, format code) pair.
type handlerRegistry struct {
	mu       sync.RWMutex
	fallback contracts.ContentHandler
	byPair   map[codePair]registration
	byName   map[string]contracts.ContentHandler
}

func NewHandlerRegistry(defaultHandler contracts.ContentHandler) contracts.ContentHandlerRegistry {
	return &handlerRegistry{
		fallback: defaultHandler,
		byPair:   make(map[codePair]registration),
		byName:   map[string]contracts.ContentHandler{DefaultHandlerName: defaultHandler},
	}
}

func (r *handlerRegistry) DefaultUnstructuredHandler() (string, contracts.ContentHandler) {
	return DefaultHandlerName, r.fallback
}

// DiscreteHandler falls back from the exact (type code, format code) pair to
// registrations keyed on the format code alone, so a handler can cover every
// document type of one format family.
func (r *handlerRegistry) DiscreteHandler(typeCode, formatCode xds.CodedValue) (string, contracts.ContentHandler) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := []codePair{
		pairKey(typeCode, formatCode),
		pairKey(xds.CodedValue{}, formatCode),
		{formatCode: formatCode.Code},
	}
	for _, key := range candidates {
		if reg, ok := r.byPair[key]; ok {
			return reg.name, reg.handler
		}
	}
	return "", nil
}

func (r *handlerRegistry) HandlerByName(name string) contracts.ContentHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

func (r *handlerRegistry) RegisterDiscreteHandler(name string, typeCode, formatCode xds.CodedValue, handler contracts.ContentHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byPair[pairKey(typeCode, formatCode)] = registration{name: name, handler: handler}
	r.byName[name] = handler
}

func pairKey(typeCode, formatCode xds.CodedValue) codePair {
	return codePair{
		typeCode:     typeCode.Code,
		typeScheme:   typeCode.CodingScheme,
		formatCode:   formatCode.Code,
		formatScheme: formatCode.CodingScheme,
	}
}
