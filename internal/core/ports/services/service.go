package services

// ServiceContainer holds all service facades needed by the handlers.
type ServiceContainer struct {
	Community  CommunitySvcFacade
	Membership MembershipSvcFacade
	Record     RecordSvcFacade
}
