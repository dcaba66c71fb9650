package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/config"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/contracts"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/app/models"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/constvars"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/exceptions"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/omrs_dto"
	"github.com/I-TECH-UW/openmrs-module-shr-xds-b-repository-1/internal/pkg/xds"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubPatientResolver struct {
	patient *omrs_dto.Patient
	err     error
}

func (s *stubPatientResolver) ResolvePatient(_ context.Context, _ *xds.ExtrinsicObject) (*omrs_dto.Patient, error) {
	return s.patient, s.err
}

type stubProviderResolver struct {
	providers models.RoleProviderMap
}

func (s *stubProviderResolver) ResolveProvidersByRole(_ context.Context, _ *xds.ExtrinsicObject) (models.RoleProviderMap, error) {
	return s.providers, nil
}

type stubEncounterResolver struct {
	encounterType *omrs_dto.EncounterType
	encounter     *omrs_dto.Encounter
	resolved      int
}

func (s *stubEncounterResolver) ResolveEncounterType(_ context.Context, _ *xds.ExtrinsicObject) (*omrs_dto.EncounterType, error) {
	return s.encounterType, nil
}

func (s *stubEncounterResolver) ResolveEncounter(_ context.Context, _ *xds.ExtrinsicObject, _ []byte, _ *omrs_dto.Patient) (*omrs_dto.Encounter, error) {
	s.resolved++
	return s.encounter, nil
}

type recordingHandler struct {
	contexts []*models.DocumentContext
	err      error
}

func (h *recordingHandler) SaveContent(_ context.Context, content *models.Content, docCtx *models.DocumentContext) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	h.contexts = append(h.contexts, docCtx)
	return content.DocUniqueID, nil
}

// stubHandlerRegistry serves a fixed default handler and at most one discrete
// handler regardless of codes.
type stubHandlerRegistry struct {
	fallback     *recordingHandler
	discreteName string
	discrete     *recordingHandler
}

func (s *stubHandlerRegistry) DefaultUnstructuredHandler() (string, contracts.ContentHandler) {
	return "unstructured", s.fallback
}

func (s *stubHandlerRegistry) DiscreteHandler(_, _ xds.CodedValue) (string, contracts.ContentHandler) {
	if s.discrete == nil {
		return "", nil
	}
	return s.discreteName, s.discrete
}

func (s *stubHandlerRegistry) HandlerByName(name string) contracts.ContentHandler {
	if s.discrete != nil && name == s.discreteName {
		return s.discrete
	}
	return s.fallback
}

func (s *stubHandlerRegistry) RegisterDiscreteHandler(name string, _, _ xds.CodedValue, handler contracts.ContentHandler) {
	s.discreteName = name
	s.discrete = handler.(*recordingHandler)
}

type stubCDAImporter struct {
	imported int
	err      error
}

func (s *stubCDAImporter) ImportDocument(_ context.Context, _ []byte) error {
	s.imported++
	return s.err
}

type stubRegisteredDocs struct {
	existing map[string]*models.RegisteredDocument
}

func (s *stubRegisteredDocs) Register(_ context.Context, _ *models.RegisteredDocument) error {
	return nil
}

func (s *stubRegisteredDocs) FindByUniqueID(_ context.Context, docUniqueID string) (*models.RegisteredDocument, error) {
	return s.existing[docUniqueID], nil
}

type stubQueueRepo struct {
	enqueued []*models.QueueItem
}

func (s *stubQueueRepo) Enqueue(_ context.Context, item *models.QueueItem) error {
	s.enqueued = append(s.enqueued, item)
	return nil
}

func (s *stubQueueRepo) DequeueOldest(_ context.Context) (*models.QueueItem, error) {
	return nil, nil
}

func (s *stubQueueRepo) Complete(_ context.Context, _ string, _ bool) error {
	return nil
}

func (s *stubQueueRepo) FindByStatus(_ context.Context, _ models.QueueItemStatus, _ int64) ([]models.QueueItem, error) {
	return nil, nil
}

type stubNotifier struct {
	notified []string
	err      error
}

func (s *stubNotifier) NotifyEnqueued(_ context.Context, docUniqueID string) error {
	if s.err != nil {
		return s.err
	}
	s.notified = append(s.notified, docUniqueID)
	return nil
}

type stubGateway struct {
	response *xds.RegistryResponse
	err      error
	handlers map[string]string
}

func (s *stubGateway) RegisterDocuments(_ context.Context, handlers map[string]string, _ *xds.SubmitObjectsRequest) (*xds.RegistryResponse, error) {
	s.handlers = handlers
	return s.response, s.err
}

type importAudit struct {
	imports []bool
}

func (a *importAudit) LogRepositoryImport(_ context.Context, _, _ string, success bool) {
	a.imports = append(a.imports, success)
}

func (a *importAudit) LogExport(_ context.Context, _, _, _, _ string, _ bool) {}

type usecaseFixture struct {
	uc         *xdsRepositoryUsecase
	fallback   *recordingHandler
	registry   *stubHandlerRegistry
	importer   *stubCDAImporter
	registered *stubRegisteredDocs
	queue      *stubQueueRepo
	notifier   *stubNotifier
	gateway    *stubGateway
	audit      *importAudit
	encounters *stubEncounterResolver
}

func newUsecaseFixture(async bool) *usecaseFixture {
	f := &usecaseFixture{
		fallback:   &recordingHandler{},
		importer:   &stubCDAImporter{},
		registered: &stubRegisteredDocs{existing: make(map[string]*models.RegisteredDocument)},
		queue:      &stubQueueRepo{},
		notifier:   &stubNotifier{},
		gateway:    &stubGateway{response: &xds.RegistryResponse{Status: constvars.XDSStatusSuccess}},
		audit:      &importAudit{},
		encounters: &stubEncounterResolver{
			encounterType: &omrs_dto.EncounterType{UUID: "enctype-1"},
			encounter: &omrs_dto.Encounter{
				UUID:          "enc-1",
				EncounterType: &omrs_dto.EncounterType{UUID: "enctype-1"},
				Location:      &omrs_dto.Location{UUID: "loc-1"},
			},
		},
	}
	f.registry = &stubHandlerRegistry{fallback: f.fallback}
	f.uc = &xdsRepositoryUsecase{
		Validator:       NewMetadataValidator(),
		PatientResolver: &stubPatientResolver{patient: &omrs_dto.Patient{UUID: "pat-1"}},
		ProviderResolver: &stubProviderResolver{providers: models.RoleProviderMap{
			{RoleUUID: "role-1", ProviderUUIDs: []string{"prov-1"}},
		}},
		EncounterResolver: f.encounters,
		Handlers:          f.registry,
		CDAImporter:       f.importer,
		RegisteredDocs:    f.registered,
		QueueRepo:         f.queue,
		QueueNotifier:     f.notifier,
		Gateway:           f.gateway,
		Audit:             f.audit,
		Cfg:               &config.InternalConfig{XDS: config.XDS{AsyncDiscreteHandling: async}},
		Log:               zap.NewNop(),
	}
	return f
}

func ingestEntry(id, docUniqueID string, document []byte) xds.ExtrinsicObject {
	entry := validEntry(id, docUniqueID)
	entry.Classifications = append(entry.Classifications,
		xds.Classification{
			ClassificationScheme: constvars.UUIDXDSDocumentEntryTypeCode,
			NodeRepresentation:   "34117-2",
			Slots:                []xds.Slot{{Name: constvars.SlotNameCodingScheme, Values: []string{"LOINC"}}},
		},
		xds.Classification{
			ClassificationScheme: constvars.UUIDXDSDocumentEntryFormatCode,
			NodeRepresentation:   "PDF",
			Slots:                []xds.Slot{{Name: constvars.SlotNameCodingScheme, Values: []string{"Connect-a-thon formatCodes"}}},
		},
	)
	entry.AddOrOverwriteSlot(constvars.SlotNameHash, DocumentHash(document))
	entry.AddOrOverwriteSlot(constvars.SlotNameSize, fmt.Sprint(len(document)))
	return entry
}

func ingestRequest(entries []xds.ExtrinsicObject, documents map[string][]byte) *xds.ProvideAndRegisterRequest {
	return &xds.ProvideAndRegisterRequest{
		SubmitObjectsRequest: xds.SubmitObjectsRequest{
			ExtrinsicObjects: entries,
			RegistryPackages: []xds.RegistryPackage{{
				ObjectType: constvars.UUIDXDSSubmissionSet,
				ExternalIdentifiers: []xds.ExternalIdentifier{
					{IdentificationScheme: constvars.UUIDXDSSubmissionSetUniqueID, Value: "2.25.500"},
					{IdentificationScheme: constvars.UUIDXDSSubmissionSetPatientID, Value: "1111111111^^^&1.2.3&ISO"},
				},
			}},
		},
		Documents: documents,
	}
}

func TestProvideAndRegisterDocumentSetB(t *testing.T) {
	document := []byte("patient summary")

	t.Run("Structural mismatch fails without touching storage", func(t *testing.T) {
		f := newUsecaseFixture(false)
		request := ingestRequest([]xds.ExtrinsicObject{ingestEntry("doc1", "2.25.1", document)}, nil)

		response, err := f.uc.ProvideAndRegisterDocumentSetB(context.Background(), request)
		assert.NoError(t, err)
		assert.Equal(t, constvars.XDSStatusFailure, response.Status)
		assert.Equal(t, constvars.XDSErrMissingDocument, response.Errors[0].ErrorCode)
		assert.Empty(t, f.fallback.contexts)
		assert.Equal(t, []bool{false}, f.audit.imports)
	})

	t.Run("Unstructured ingestion registers and audits success", func(t *testing.T) {
		f := newUsecaseFixture(false)
		request := ingestRequest(
			[]xds.ExtrinsicObject{ingestEntry("doc1", "2.25.1", document)},
			map[string][]byte{"doc1": document},
		)

		response, err := f.uc.ProvideAndRegisterDocumentSetB(context.Background(), request)
		assert.NoError(t, err)
		assert.Equal(t, constvars.XDSStatusSuccess, response.Status)

		assert.Len(t, f.fallback.contexts, 1)
		assert.Equal(t, "pat-1", f.fallback.contexts[0].PatientUUID)
		assert.Equal(t, "enc-1", f.fallback.contexts[0].EncounterUUID)
		assert.Equal(t, "loc-1", f.fallback.contexts[0].LocationUUID)
		assert.Equal(t, "enctype-1", f.fallback.contexts[0].EncounterTypeUUID)
		assert.Equal(t, 1, f.encounters.resolved)
		assert.Equal(t, map[string]string{"2.25.1": "unstructured"}, f.gateway.handlers)
		assert.Equal(t, []bool{true}, f.audit.imports)
		assert.Empty(t, f.queue.enqueued)
		assert.Empty(t, f.notifier.notified)
	})

	t.Run("Duplicate unique id rejected", func(t *testing.T) {
		f := newUsecaseFixture(false)
		f.registered.existing["2.25.1"] = &models.RegisteredDocument{DocUniqueID: "2.25.1"}
		request := ingestRequest(
			[]xds.ExtrinsicObject{ingestEntry("doc1", "2.25.1", document)},
			map[string][]byte{"doc1": document},
		)

		response, err := f.uc.ProvideAndRegisterDocumentSetB(context.Background(), request)
		assert.NoError(t, err)
		assert.Equal(t, constvars.XDSStatusFailure, response.Status)
		assert.Equal(t, constvars.XDSErrDocumentUniqueIDError, response.Errors[0].ErrorCode)
		assert.Nil(t, f.gateway.handlers)
	})

	t.Run("Synchronous discrete handling resolves the encounter inline", func(t *testing.T) {
		f := newUsecaseFixture(false)
		discrete := &recordingHandler{}
		f.registry.RegisterDiscreteHandler("cda", xds.CodedValue{}, xds.CodedValue{}, discrete)
		request := ingestRequest(
			[]xds.ExtrinsicObject{ingestEntry("doc1", "2.25.1", document)},
			map[string][]byte{"doc1": document},
		)

		response, err := f.uc.ProvideAndRegisterDocumentSetB(context.Background(), request)
		assert.NoError(t, err)
		assert.Equal(t, constvars.XDSStatusSuccess, response.Status)

		assert.Len(t, discrete.contexts, 1)
		assert.Equal(t, "enc-1", discrete.contexts[0].EncounterUUID)
		assert.Equal(t, "loc-1", discrete.contexts[0].LocationUUID)
		assert.Equal(t, map[string]string{"2.25.1": "cda"}, f.gateway.handlers)
		assert.Empty(t, f.queue.enqueued)
	})

	t.Run("Synchronous discrete failure fails the submission", func(t *testing.T) {
		f := newUsecaseFixture(false)
		f.registry.RegisterDiscreteHandler("cda", xds.CodedValue{}, xds.CodedValue{}, &recordingHandler{err: assert.AnError})
		request := ingestRequest(
			[]xds.ExtrinsicObject{ingestEntry("doc1", "2.25.1", document)},
			map[string][]byte{"doc1": document},
		)

		response, err := f.uc.ProvideAndRegisterDocumentSetB(context.Background(), request)
		assert.NoError(t, err)
		assert.Equal(t, constvars.XDSStatusFailure, response.Status)
		assert.Equal(t, constvars.XDSErrRepositoryError, response.Errors[0].ErrorCode)
	})

	t.Run("Asynchronous discrete handling queues and notifies after acceptance", func(t *testing.T) {
		f := newUsecaseFixture(true)
		discrete := &recordingHandler{}
		f.registry.RegisterDiscreteHandler("cda", xds.CodedValue{}, xds.CodedValue{}, discrete)
		request := ingestRequest(
			[]xds.ExtrinsicObject{ingestEntry("doc1", "2.25.1", document)},
			map[string][]byte{"doc1": document},
		)

		response, err := f.uc.ProvideAndRegisterDocumentSetB(context.Background(), request)
		assert.NoError(t, err)
		assert.Equal(t, constvars.XDSStatusSuccess, response.Status)

		assert.Empty(t, discrete.contexts)
		assert.Equal(t, 1, f.encounters.resolved)
		assert.Len(t, f.queue.enqueued, 1)
		assert.Equal(t, "2.25.1", f.queue.enqueued[0].DocUniqueID)
		assert.Equal(t, "pat-1", f.queue.enqueued[0].PatientUUID)
		assert.Equal(t, "enctype-1", f.queue.enqueued[0].EncounterTypeUUID)
		assert.Equal(t, []string{"2.25.1"}, f.notifier.notified)
	})

	t.Run("Registry rejection leaves no stored content or queue items", func(t *testing.T) {
		f := newUsecaseFixture(true)
		f.registry.RegisterDiscreteHandler("cda", xds.CodedValue{}, xds.CodedValue{}, &recordingHandler{})
		f.gateway.response = &xds.RegistryResponse{Status: constvars.XDSStatusFailure}
		request := ingestRequest(
			[]xds.ExtrinsicObject{ingestEntry("doc1", "2.25.1", document)},
			map[string][]byte{"doc1": document},
		)

		response, err := f.uc.ProvideAndRegisterDocumentSetB(context.Background(), request)
		assert.NoError(t, err)
		assert.Equal(t, constvars.XDSStatusFailure, response.Status)
		assert.Empty(t, f.fallback.contexts)
		assert.Empty(t, f.queue.enqueued)
		assert.Empty(t, f.notifier.notified)
		assert.Equal(t, 0, f.encounters.resolved)
		assert.Equal(t, []bool{false}, f.audit.imports)
	})

	t.Run("Failed wakeup does not fail the submission", func(t *testing.T) {
		f := newUsecaseFixture(true)
		f.registry.RegisterDiscreteHandler("cda", xds.CodedValue{}, xds.CodedValue{}, &recordingHandler{})
		f.notifier.err = assert.AnError
		request := ingestRequest(
			[]xds.ExtrinsicObject{ingestEntry("doc1", "2.25.1", document)},
			map[string][]byte{"doc1": document},
		)

		response, err := f.uc.ProvideAndRegisterDocumentSetB(context.Background(), request)
		assert.NoError(t, err)
		assert.Equal(t, constvars.XDSStatusSuccess, response.Status)
	})

	t.Run("Structured documents are imported; import failure is isolated", func(t *testing.T) {
		f := newUsecaseFixture(false)
		f.importer.err = assert.AnError
		entry := ingestEntry("doc1", "2.25.1", document)
		for i := range entry.Classifications {
			if entry.Classifications[i].ClassificationScheme == constvars.UUIDXDSDocumentEntryFormatCode {
				entry.Classifications[i].NodeRepresentation = constvars.CDAFormatCode
			}
		}
		request := ingestRequest([]xds.ExtrinsicObject{entry}, map[string][]byte{"doc1": document})

		response, err := f.uc.ProvideAndRegisterDocumentSetB(context.Background(), request)
		assert.NoError(t, err)
		assert.Equal(t, constvars.XDSStatusSuccess, response.Status)
		assert.Equal(t, 1, f.importer.imported)
	})

	t.Run("Registry transport failure surfaces as failure response", func(t *testing.T) {
		f := newUsecaseFixture(false)
		f.gateway.response = nil
		f.gateway.err = exceptions.ErrRegistryNotAvailable(assert.AnError, "http://registry.example")
		request := ingestRequest(
			[]xds.ExtrinsicObject{ingestEntry("doc1", "2.25.1", document)},
			map[string][]byte{"doc1": document},
		)

		response, err := f.uc.ProvideAndRegisterDocumentSetB(context.Background(), request)
		assert.NoError(t, err)
		assert.Equal(t, constvars.XDSStatusFailure, response.Status)
		assert.Equal(t, constvars.XDSErrRegistryNotAvailable, response.Errors[0].ErrorCode)
		assert.Empty(t, f.fallback.contexts)
	})
}
