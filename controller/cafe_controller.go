package controller

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"

	"cafe-api/model"
	"cafe-api/service"
	"cafe-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	msgCafeNotFound     = "Sorry a cafe with that id was not found in the database."
	msgLocationNotFound = "Sorry, we don't have a cafe at that location."
	msgEmptyStore       = "Sorry, there are no cafes in the database yet."
	msgNameConflict     = "Sorry, a cafe with that name already exists."
	msgInternal         = "Something went wrong, please try again later."

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type CafeController struct {
	cafes *service.CafeService
}

func NewCafeController(cafes *service.CafeService) *CafeController {
	return &CafeController{cafes: cafes}
}

type addCafeForm struct {
	Name         string  `form:"name"`
	MapURL       string  `form:"map_url"`
	ImgURL       string  `form:"img_url"`
	Location     string  `form:"location"`
	Seats        string  `form:"seats"`
	HasToilet    string  `form:"has_toilet"`
	HasWifi      string  `form:"has_wifi"`
	HasSockets   string  `form:"has_sockets"`
	CanTakeCalls string  `form:"can_take_calls"`
	CoffeePrice  *string `form:"coffee_price"`
}

func (ctl *CafeController) GetRandomCafe(c *gin.Context) {
	cafe, err := ctl.cafes.PickRandom(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cafe.ToMap())
}

func (ctl *CafeController) GetAllCafes(c *gin.Context) {
	cafes, err := ctl.cafes.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ToMaps(cafes))
}

func (ctl *CafeController) SearchCafe(c *gin.Context) {
	loc := c.Query("loc")
	cafes, err := ctl.cafes.SearchByLocation(c.Request.Context(), loc)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(cafes) == 0 {
		c.JSON(http.StatusOK, utils.ErrorBody(utils.CategoryNotFound, msgLocationNotFound))
		return
	}
	c.JSON(http.StatusOK, model.ToMaps(cafes))
}

func (ctl *CafeController) GetCafeByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cafe, err := ctl.cafes.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cafe.ToMap())
}

func (ctl *CafeController) AddCafe(c *gin.Context) {
	var form addCafeForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		utils.AbortWithError(c, http.StatusBadRequest, utils.CategoryBadRequest, err.Error())
		return
	}

	_, err := ctl.cafes.Create(c.Request.Context(), service.CreateCafeInput{
		Name:         form.Name,
		MapURL:       form.MapURL,
		ImgURL:       form.ImgURL,
		Location:     form.Location,
		Seats:        form.Seats,
		HasToilet:    utils.ParseAffirmative(form.HasToilet),
		HasWifi:      utils.ParseAffirmative(form.HasWifi),
		HasSockets:   utils.ParseAffirmative(form.HasSockets),
		CanTakeCalls: utils.ParseAffirmative(form.CanTakeCalls),
		CoffeePrice:  form.CoffeePrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, "Successfully added the new cafe.")
}

func (ctl *CafeController) UpdateCoffeePrice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var price *string
	if p, exists := c.GetQuery("new_price"); exists {
		price = &p
	}

	if _, err := ctl.cafes.UpdatePrice(c.Request.Context(), id, price); err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, "Successfully updated the price.")
}

func (ctl *CafeController) DeleteCafe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctl.cafes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, "Successfully deleted the cafe from the database.")
}

func (ctl *CafeController) BulkAddCafes(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.AbortWithError(c, http.StatusBadRequest, utils.CategoryBadRequest, "Excel file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Unable to open uploaded workbook: %v", err)
		utils.AbortWithError(c, http.StatusInternalServerError, utils.CategoryInternal, msgInternal)
		return
	}
	defer file.Close()

	result, err := ctl.cafes.ImportCafes(c.Request.Context(), file)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   gin.H{utils.CategoryBadRequest: verr.Error()},
				"skipped": result.Skipped,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response": gin.H{"success": "Successfully imported the cafes."},
		"imported": result.Imported,
		"skipped":  result.Skipped,
	})
}

func (ctl *CafeController) ExportCafes(c *gin.Context) {
	var buf bytes.Buffer
	if err := ctl.cafes.ExportCafes(c.Request.Context(), &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="cafes.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// parseID reads the :id path segment. Anything that is not a cafe id is answered as not found.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.AbortWithError(c, http.StatusNotFound, utils.CategoryNotFound, msgCafeNotFound)
		return 0, false
	}
	return uint(id), true
}

func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		utils.AbortWithError(c, http.StatusNotFound, utils.CategoryNotFound, msgCafeNotFound)
	case errors.Is(err, service.ErrEmptyStore):
		utils.AbortWithError(c, http.StatusNotFound, utils.CategoryNotFound, msgEmptyStore)
	case errors.Is(err, service.ErrConflict):
		utils.AbortWithError(c, http.StatusConflict, utils.CategoryConflict, msgNameConflict)
	case errors.As(err, &verr):
		utils.AbortWithError(c, http.StatusBadRequest, utils.CategoryBadRequest, verr.Error())
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.AbortWithError(c, http.StatusInternalServerError, utils.CategoryInternal, msgInternal)
	}
}
