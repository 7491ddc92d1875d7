package services

// ServiceManager exposes every service to the HTTP layer
type ServiceManager interface {
	Survey() SurveyService
	Response() ResponseService
	Export() ExportService
	Import() ImportService
	Interview() InterviewService
}

type serviceManager struct {
	survey    SurveyService
	response  ResponseService
	export    ExportService
	importer  ImportService
	interview InterviewService
}

func NewServiceManager(
	survey SurveyService,
	response ResponseService,
	export ExportService,
	importer ImportService,
	interview InterviewService,
) ServiceManager {
	return &serviceManager{
		survey:    survey,
		response:  response,
		export:    export,
		importer:  importer,
		interview: interview,
	}
}

func (m *serviceManager) Survey() SurveyService       { return m.survey }
func (m *serviceManager) Response() ResponseService   { return m.response }
func (m *serviceManager) Export() ExportService       { return m.export }
func (m *serviceManager) Import() ImportService       { return m.importer }
func (m *serviceManager) Interview() InterviewService { return m.interview }
