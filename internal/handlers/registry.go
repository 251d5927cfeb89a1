package handlers

// AppHandlers bundles every handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Resume       *ResumeHandler
	Search       *SearchHandler
	Subscription *SubscriptionHandler
	Announcement *AnnouncementHandler
	File         *FileHandler
}
