package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tmsiti/institute-api/internal/config"
	"github.com/tmsiti/institute-api/internal/i18n"
	"github.com/tmsiti/institute-api/internal/repository"
	"github.com/tmsiti/institute-api/internal/storage"
)

// NewsHandler serves news items and announcements.  Public reads resolve
// localized fields to the request language; moderation endpoints work with
// all translations at once.
type NewsHandler struct {
	Cfg           config.Config
	News          *repository.NewsRepo
	Announcements *repository.AnnouncementRepo
	Store         *storage.Store
}

func NewNewsHandler(cfg config.Config, n *repository.NewsRepo, a *repository.AnnouncementRepo, s *storage.Store) *NewsHandler {
	return &NewsHandler{Cfg: cfg, News: n, Announcements: a, Store: s}
}

// newsView is the reader-facing shape: one language only.
type newsView struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ImagePath   string    `json:"image_path,omitempty"`
	VideoPath   string    `json:"video_path,omitempty"`
	IsFeatured  bool      `json:"is_featured"`
	PublishedAt time.Time `json:"published_date"`
}

func (h *NewsHandler) newsView(n repository.News, lang string) newsView {
	order := h.Cfg.Languages
	return newsView{
		ID:          n.ID,
		Title:       localized(n.Title, lang, order),
		Content:     localized(n.Content, lang, order),
		ImagePath:   n.ImagePath,
		VideoPath:   n.VideoPath,
		IsFeatured:  n.IsFeatured,
		PublishedAt: n.PublishedAt,
	}
}

// ListNews returns active news for readers, newest first.
func (h *NewsHandler) ListNews(c echo.Context) error {
	skip, limit := pageParams(c)
	lang := requestLang(c, h.Cfg.DefaultLang)

	f := repository.NewsFilter{
		Skip:   skip,
		Limit:  limit,
		Search: c.QueryParam("search"),
		Lang:   lang,
	}
	if v := c.QueryParam("featured"); v != "" {
		featured := v == "true" || v == "1"
		f.Featured = &featured
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	items, err := h.News.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	total, err := h.News.Count(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	views := make([]newsView, 0, len(items))
	for _, n := range items {
		views = append(views, h.newsView(n, lang))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": views, "total": total, "skip": skip, "limit": limit})
}

// GetNews returns one active news item for readers.
func (h *NewsHandler) GetNews(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	n, err := h.News.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "news not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, h.newsView(n, requestLang(c, h.Cfg.DefaultLang)))
}

type newsReq struct {
	Title      i18n.Text `json:"title"`
	Content    i18n.Text `json:"content"`
	IsFeatured bool      `json:"is_featured"`
	IsActive   *bool     `json:"is_active"`
}

// CreateNews inserts a news item.  Title and content must carry every
// supported language; an incomplete payload is rejected before any write.
func (h *NewsHandler) CreateNews(c echo.Context) error {
	var req newsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := i18n.ValidateAll(h.Cfg.Languages, map[string]i18n.Text{
		"title":   req.Title,
		"content": req.Content,
	}); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	n := repository.News{Title: req.Title, Content: req.Content, IsFeatured: req.IsFeatured}
	if err := h.News.Create(ctx, &n); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, n)
}

// UpdateNews replaces a news item's translations and flags.
func (h *NewsHandler) UpdateNews(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req newsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := i18n.ValidateAll(h.Cfg.Languages, map[string]i18n.Text{
		"title":   req.Title,
		"content": req.Content,
	}); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	n, err := h.News.GetAny(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "news not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	n.Title = req.Title
	n.Content = req.Content
	n.IsFeatured = req.IsFeatured
	if req.IsActive != nil {
		n.IsActive = *req.IsActive
	}
	if err := h.News.Update(ctx, &n); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, n)
}

// DeleteNews removes a news item and its media files.
func (h *NewsHandler) DeleteNews(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	n, err := h.News.GetAny(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "news not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.News.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	_ = h.Store.Remove(n.ImagePath)
	_ = h.Store.Remove(n.VideoPath)
	return c.NoContent(http.StatusNoContent)
}

// UploadNewsImage attaches an image to a news item, replacing any previous one.
func (h *NewsHandler) UploadNewsImage(c echo.Context) error {
	return h.attachNewsMedia(c, "image")
}

// UploadNewsVideo attaches a video to a news item.
func (h *NewsHandler) UploadNewsVideo(c echo.Context) error {
	return h.attachNewsMedia(c, "video")
}

func (h *NewsHandler) attachNewsMedia(c echo.Context, kind string) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	n, err := h.News.GetAny(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "news not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	var path string
	var ok bool
	var old string
	if kind == "image" {
		path, ok = saveUpload(c, h.Store, "file", "news", storage.KindImage)
		old, n.ImagePath = n.ImagePath, path
	} else {
		path, ok = saveUpload(c, h.Store, "file", "news", storage.KindVideo)
		old, n.VideoPath = n.VideoPath, path
	}
	if !ok {
		return nil
	}

	if err := h.News.Update(ctx, &n); err != nil {
		_ = h.Store.Remove(path)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if old != "" {
		_ = h.Store.Remove(old)
	}
	return c.JSON(http.StatusOK, echo.Map{"path": path})
}

// ----- announcements -----

type announcementView struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ImagePath   string    `json:"image_path,omitempty"`
	PublishedAt time.Time `json:"published_date"`
}

func (h *NewsHandler) announcementView(a repository.Announcement, lang string) announcementView {
	order := h.Cfg.Languages
	return announcementView{
		ID:          a.ID,
		Title:       localized(a.Title, lang, order),
		Content:     localized(a.Content, lang, order),
		ImagePath:   a.ImagePath,
		PublishedAt: a.PublishedAt,
	}
}

// ListAnnouncements returns active announcements for readers.
func (h *NewsHandler) ListAnnouncements(c echo.Context) error {
	skip, limit := pageParams(c)
	lang := requestLang(c, h.Cfg.DefaultLang)

	ctx, cancel := dbTimeout(c)
	defer cancel()

	items, err := h.Announcements.List(ctx, skip, limit, c.QueryParam("search"), lang)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	total, err := h.Announcements.Count(ctx, c.QueryParam("search"), lang)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	views := make([]announcementView, 0, len(items))
	for _, a := range items {
		views = append(views, h.announcementView(a, lang))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": views, "total": total, "skip": skip, "limit": limit})
}

// GetAnnouncement returns one active announcement for readers.
func (h *NewsHandler) GetAnnouncement(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	a, err := h.Announcements.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, h.announcementView(a, requestLang(c, h.Cfg.DefaultLang)))
}

type announcementReq struct {
	Title    i18n.Text `json:"title"`
	Content  i18n.Text `json:"content"`
	IsActive *bool     `json:"is_active"`
}

// CreateAnnouncement inserts an announcement with all translations present.
func (h *NewsHandler) CreateAnnouncement(c echo.Context) error {
	var req announcementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := i18n.ValidateAll(h.Cfg.Languages, map[string]i18n.Text{
		"title":   req.Title,
		"content": req.Content,
	}); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	a := repository.Announcement{Title: req.Title, Content: req.Content}
	if err := h.Announcements.Create(ctx, &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, a)
}

// UpdateAnnouncement replaces an announcement's translations and flags.
func (h *NewsHandler) UpdateAnnouncement(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req announcementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := i18n.ValidateAll(h.Cfg.Languages, map[string]i18n.Text{
		"title":   req.Title,
		"content": req.Content,
	}); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbTimeout(c)
	defer cancel()

	a, err := h.Announcements.GetAny(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	a.Title = req.Title
	a.Content = req.Content
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	if err := h.Announcements.Update(ctx, &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, a)
}

// DeleteAnnouncement removes an announcement and its image.
func (h *NewsHandler) DeleteAnnouncement(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	a, err := h.Announcements.GetAny(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Announcements.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	_ = h.Store.Remove(a.ImagePath)
	return c.NoContent(http.StatusNoContent)
}

// UploadAnnouncementImage attaches an image to an announcement.
func (h *NewsHandler) UploadAnnouncementImage(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := dbTimeout(c)
	defer cancel()

	a, err := h.Announcements.GetAny(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	path, ok := saveUpload(c, h.Store, "file", "announcements", storage.KindImage)
	if !ok {
		return nil
	}
	old := a.ImagePath
	a.ImagePath = path
	if err := h.Announcements.Update(ctx, &a); err != nil {
		_ = h.Store.Remove(path)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if old != "" {
		_ = h.Store.Remove(old)
	}
	return c.JSON(http.StatusOK, echo.Map{"path": path})
}
