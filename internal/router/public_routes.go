package router

import (
	"github.com/labstack/echo/v4"
)

// registerPublic mounts the read-only content surface.  These routes carry
// no authentication; responses resolve localized fields to the negotiated
// request language.
func registerPublic(e *echo.Echo, d Deps) {
	g := e.Group("/api/v1")

	// News and announcements.
	g.GET("/news", d.News.ListNews)
	g.GET("/news/:id", d.News.GetNews)
	g.GET("/announcements", d.News.ListAnnouncements)
	g.GET("/announcements/:id", d.News.GetAnnouncement)

	// Regulatory document catalogs.
	g.GET("/regulations/laws", d.Regulations.ListLaws)
	g.GET("/regulations/urban-norms", d.Regulations.ListUrbanNorms)
	g.GET("/regulations/standards", d.Regulations.ListStandards)
	g.GET("/regulations/building-regulations", d.Regulations.ListBuildingRegulations)
	g.GET("/regulations/smeta-resource-norms", d.Regulations.ListSmetaNorms)
	g.GET("/regulations/references", d.Regulations.ListReferences)

	// Institute pages.
	g.GET("/institute/about", d.Institute.GetAbout)
	g.GET("/institute/structure", d.Institute.GetStructure)
	g.GET("/institute/management", d.Institute.ListManagement)
	g.GET("/institute/structural-divisions", d.Institute.ListDivisions)
	g.GET("/institute/vacancies", d.Institute.ListVacancies)

	// Activity pages.
	g.GET("/activity/management-systems", d.Activity.GetManagementSystems)
	g.GET("/activity/laboratories", d.Activity.ListLaboratories)

	// Contact form and the anti-corruption page.
	g.POST("/contact", d.Contact.Submit)
	g.GET("/contact/anti-corruption", d.Contact.GetAntiCorruption)
}
