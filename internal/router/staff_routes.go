package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tmsiti/institute-api/internal/middleware"
)

// registerStaff mounts content management under /api/v1/admin.  Every route
// requires an authenticated account with at least the moderator role.
func registerStaff(e *echo.Echo, d Deps) {
	g := e.Group("/api/v1/admin", d.Authenticate, middleware.RequireModerator())

	// News.
	g.POST("/news", d.News.CreateNews)
	g.PUT("/news/:id", d.News.UpdateNews)
	g.DELETE("/news/:id", d.News.DeleteNews)
	g.POST("/news/:id/image", d.News.UploadNewsImage)
	g.POST("/news/:id/video", d.News.UploadNewsVideo)

	// Announcements.
	g.POST("/announcements", d.News.CreateAnnouncement)
	g.PUT("/announcements/:id", d.News.UpdateAnnouncement)
	g.DELETE("/announcements/:id", d.News.DeleteAnnouncement)
	g.POST("/announcements/:id/image", d.News.UploadAnnouncementImage)

	// Regulatory documents.
	g.POST("/regulations/laws", d.Regulations.CreateLaw)
	g.PUT("/regulations/laws/:id", d.Regulations.UpdateLaw)
	g.DELETE("/regulations/laws/:id", d.Regulations.DeleteLaw)
	g.POST("/regulations/urban-norms", d.Regulations.CreateUrbanNorm)
	g.PUT("/regulations/urban-norms/:id", d.Regulations.UpdateUrbanNorm)
	g.DELETE("/regulations/urban-norms/:id", d.Regulations.DeleteUrbanNorm)
	g.POST("/regulations/standards", d.Regulations.CreateStandard)
	g.PUT("/regulations/standards/:id", d.Regulations.UpdateStandard)
	g.DELETE("/regulations/standards/:id", d.Regulations.DeleteStandard)
	g.POST("/regulations/standards/:id/pdf", d.Regulations.UploadStandardPdf)
	g.POST("/regulations/building-regulations", d.Regulations.CreateBuildingRegulation)
	g.PUT("/regulations/building-regulations/:id", d.Regulations.UpdateBuildingRegulation)
	g.DELETE("/regulations/building-regulations/:id", d.Regulations.DeleteBuildingRegulation)
	g.POST("/regulations/building-regulations/:id/pdf", d.Regulations.UploadBuildingRegulationPdf)
	g.POST("/regulations/smeta-resource-norms", d.Regulations.CreateSmetaNorm)
	g.PUT("/regulations/smeta-resource-norms/:id", d.Regulations.UpdateSmetaNorm)
	g.DELETE("/regulations/smeta-resource-norms/:id", d.Regulations.DeleteSmetaNorm)
	g.POST("/regulations/references", d.Regulations.CreateReference)
	g.PUT("/regulations/references/:id", d.Regulations.UpdateReference)
	g.DELETE("/regulations/references/:id", d.Regulations.DeleteReference)
	g.POST("/regulations/references/:id/pdf", d.Regulations.UploadReferencePdf)

	// Institute pages.
	g.PUT("/institute/about", d.Institute.UpsertAbout)
	g.POST("/institute/about/certificate", d.Institute.UploadCertificate)
	g.PUT("/institute/structure", d.Institute.UpsertStructure)
	g.POST("/institute/management", d.Institute.CreateManagement)
	g.PUT("/institute/management/:id", d.Institute.UpdateManagement)
	g.POST("/institute/management/:id/photo", d.Institute.UploadManagementPhoto)
	g.POST("/institute/structural-divisions", d.Institute.CreateDivision)
	g.PUT("/institute/structural-divisions/:id", d.Institute.UpdateDivision)
	g.POST("/institute/structural-divisions/:id/photo", d.Institute.UploadDivisionPhoto)
	g.POST("/institute/vacancies", d.Institute.CreateVacancy)
	g.PUT("/institute/vacancies/:id", d.Institute.UpdateVacancy)

	// Activity pages.
	g.PUT("/activity/management-systems", d.Activity.UpsertManagementSystems)
	g.POST("/activity/management-systems/pdf", d.Activity.UploadManagementSystemsPdf)
	g.POST("/activity/laboratories", d.Activity.CreateLaboratory)
	g.PUT("/activity/laboratories/:id", d.Activity.UpdateLaboratory)

	// Inquiry inbox.
	g.GET("/contacts", d.Contact.List)
	g.GET("/contacts/stats", d.Contact.Stats)
	g.GET("/contacts/:id", d.Contact.Get)
	g.PUT("/contacts/:id", d.Contact.Respond)
	g.DELETE("/contacts/:id", d.Contact.Delete)

	// Anti-corruption page.
	g.PUT("/contact/anti-corruption", d.Contact.UpsertAntiCorruption)
}
