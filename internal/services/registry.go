package services

// ServiceContainer bundles every service for handler wiring.
type ServiceContainer struct {
	Auth         AuthService
	User         UserService
	Resume       ResumeService
	Search       SearchService
	Subscription SubscriptionService
	Announcement AnnouncementService
	Upload       UploadService
	Export       ExportService
}
