package cdaimport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/exceptions"

	"go.uber.org/zap"
)

var (
	cdaImporterInstance contracts.CDAImporter
	onceCDAImporter     sync.Once
)

// cdaImportService forwards structured clinical documents to the configured
// import endpoint. With no endpoint configured the import is a logged no-op,
// which keeps environments without a CDA processor working.
type cdaImportService struct {
	ImportURL string
	HTTP      *http.Client
	Log       *zap.Logger
}

func NewCDAImportService(importURL string, timeout time.Duration, logger *zap.Logger) contracts.CDAImporter {
	onceCDAImporter.Do(func() {
		cdaImporterInstance = &cdaImportService{
			ImportURL: importURL,
			HTTP:      &http.Client{Timeout: timeout},
			Log:       logger,
		}
	})
	return cdaImporterInstance
}

func (s *cdaImportService) ImportDocument(ctx context.Context, payload []byte) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("cdaImportService.ImportDocument called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if s.ImportURL == "" {
		s.Log.Warn("cdaImportService.ImportDocument no import endpoint configured; skipping",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, s.ImportURL, bytes.NewReader(payload))
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationXML)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		s.Log.Error("cdaImportService.ImportDocument error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		err := fmt.Errorf("CDA import endpoint returned status %d", resp.StatusCode)
		s.Log.Error("cdaImportService.ImportDocument import rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return exceptions.ErrSendHTTPRequest(err)
	}
	return nil
}
