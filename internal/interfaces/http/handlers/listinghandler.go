package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"habita/internal/application/listing/usecases"
	"habita/internal/interfaces/dto"
	"habita/internal/shared/logger"
	"habita/internal/shared/utils"
)

type ListingHandler struct {
	createUC      *usecases.CreateListingUseCase
	updateUC      *usecases.UpdateListingUseCase
	publishUC     *usecases.PublishListingUseCase
	archiveUC     *usecases.ArchiveListingUseCase
	getUC         *usecases.GetListingUseCase
	searchUC      *usecases.SearchListingsUseCase
	listMineUC    *usecases.ListMyListingsUseCase
	setFeaturedUC *usecases.SetFeaturedUseCase
	addImageUC    *usecases.AddListingImageUseCase
	removeImageUC *usecases.RemoveListingImageUseCase
	logger        logger.Interface
}

func NewListingHandler(
	createUC *usecases.CreateListingUseCase,
	updateUC *usecases.UpdateListingUseCase,
	publishUC *usecases.PublishListingUseCase,
	archiveUC *usecases.ArchiveListingUseCase,
	getUC *usecases.GetListingUseCase,
	searchUC *usecases.SearchListingsUseCase,
	listMineUC *usecases.ListMyListingsUseCase,
	setFeaturedUC *usecases.SetFeaturedUseCase,
	addImageUC *usecases.AddListingImageUseCase,
	removeImageUC *usecases.RemoveListingImageUseCase,
) *ListingHandler {
	return &ListingHandler{
		createUC:      createUC,
		updateUC:      updateUC,
		publishUC:     publishUC,
		archiveUC:     archiveUC,
		getUC:         getUC,
		searchUC:      searchUC,
		listMineUC:    listMineUC,
		setFeaturedUC: setFeaturedUC,
		addImageUC:    addImageUC,
		removeImageUC: removeImageUC,
		logger:        logger.NewLogger(),
	}
}

type CreateListingRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	PropertyType string  `json:"property_type" binding:"required,oneof=house apartment land commercial"`
	OfferType    string  `json:"offer_type" binding:"required,oneof=sale rent"`
	PriceCents   int64   `json:"price_cents" binding:"required,min=0"`
	Currency     string  `json:"currency"`
	City         string  `json:"city" binding:"required"`
	State        string  `json:"state"`
	Address      string  `json:"address"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	AreaM2       float64 `json:"area_m2"`
}

func (h *ListingHandler) Create(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	l, err := h.createUC.Execute(c.Request.Context(), usecases.CreateListingCommand{
		OwnerID:      currentUserID(c),
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		OfferType:    req.OfferType,
		PriceCents:   req.PriceCents,
		Currency:     req.Currency,
		City:         req.City,
		State:        req.State,
		Address:      req.Address,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		AreaM2:       req.AreaM2,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.FromListing(l), "listing created")
}

type UpdateListingRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	PriceCents  int64   `json:"price_cents" binding:"required,min=0"`
	City        string  `json:"city" binding:"required"`
	State       string  `json:"state"`
	Address     string  `json:"address"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	AreaM2      float64 `json:"area_m2"`
}

func (h *ListingHandler) Update(c *gin.Context) {
	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	l, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateListingCommand{
		ListingSID:  c.Param("sid"),
		ActorID:     currentUserID(c),
		ActorRole:   currentUserRole(c),
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		City:        req.City,
		State:       req.State,
		Address:     req.Address,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaM2:      req.AreaM2,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "listing updated", dto.FromListing(l))
}

func (h *ListingHandler) Publish(c *gin.Context) {
	l, err := h.publishUC.Execute(c.Request.Context(), usecases.PublishListingCommand{
		ListingSID: c.Param("sid"),
		ActorID:    currentUserID(c),
		ActorRole:  currentUserRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "listing published", dto.FromListing(l))
}

func (h *ListingHandler) Archive(c *gin.Context) {
	err := h.archiveUC.Execute(c.Request.Context(), usecases.ArchiveListingCommand{
		ListingSID: c.Param("sid"),
		ActorID:    currentUserID(c),
		ActorRole:  currentUserRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "listing archived", nil)
}

func (h *ListingHandler) Get(c *gin.Context) {
	l, err := h.getUC.Execute(c.Request.Context(), usecases.GetListingQuery{
		ListingSID: c.Param("sid"),
		ActorID:    currentUserID(c),
		ActorRole:  currentUserRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", dto.FromListing(l))
}

func (h *ListingHandler) Search(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := usecases.SearchListingsQuery{
		City:         c.Query("city"),
		State:        c.Query("state"),
		PropertyType: c.Query("property_type"),
		OfferType:    c.Query("offer_type"),
		FeaturedOnly: c.Query("featured") == "true",
		Page:         p.Page,
		PageSize:     p.PageSize,
		SortBy:       c.Query("sort_by"),
		SortDesc:     c.Query("sort_order") == "desc",
	}
	if v := c.Query("min_price"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			query.MinPrice = &n
		}
	}
	if v := c.Query("max_price"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			query.MaxPrice = &n
		}
	}

	result, err := h.searchUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.FromListings(result.Listings), result.Total,
		result.Pagination.Page, result.Pagination.PageSize)
}

func (h *ListingHandler) ListMine(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listMineUC.Execute(c.Request.Context(), usecases.ListMyListingsQuery{
		OwnerID:  currentUserID(c),
		Status:   c.Query("status"),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.FromListings(result.Listings), result.Total,
		result.Pagination.Page, result.Pagination.PageSize)
}

type SetFeaturedRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

func (h *ListingHandler) SetFeatured(c *gin.Context) {
	var req SetFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	l, err := h.setFeaturedUC.Execute(c.Request.Context(), usecases.SetFeaturedCommand{
		ListingSID: c.Param("sid"),
		ActorID:    currentUserID(c),
		ActorRole:  currentUserRole(c),
		Featured:   *req.Featured,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "featured flag updated", dto.FromListing(l))
}

type AddImageRequest struct {
	URL      string `json:"url" binding:"required,url"`
	Position int    `json:"position"`
}

func (h *ListingHandler) AddImage(c *gin.Context) {
	var req AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	img, err := h.addImageUC.Execute(c.Request.Context(), usecases.AddListingImageCommand{
		ListingSID: c.Param("sid"),
		ActorID:    currentUserID(c),
		ActorRole:  currentUserRole(c),
		URL:        req.URL,
		Position:   req.Position,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.ListingImageDTO{
		ID:       img.ID(),
		URL:      img.URL(),
		Position: img.Position(),
	}, "image added")
}

func (h *ListingHandler) RemoveImage(c *gin.Context) {
	imageID, err := strconv.ParseUint(c.Param("imageID"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid image ID")
		return
	}

	err = h.removeImageUC.Execute(c.Request.Context(), usecases.RemoveListingImageCommand{
		ListingSID: c.Param("sid"),
		ImageID:    uint(imageID),
		ActorID:    currentUserID(c),
		ActorRole:  currentUserRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "image removed", nil)
}
