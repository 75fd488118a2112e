package v1

import (
	"net/http"

	"github.com/budgetradar/backend/internal/httputil"
	"github.com/budgetradar/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Datasets   string `json:"datasets" example:"https://example.com/api/v1/datasets"`      // URL of the dataset collection endpoint
	Import     string `json:"import" example:"https://example.com/api/v1/import"`          // URL of the import list endpoint
	MatchRules string `json:"matchRules" example:"https://example.com/api/v1/match-rules"` // URL of the match rule collection endpoint
	Templates  string `json:"templates" example:"https://example.com/api/v1/templates"`    // URL of the template gallery endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Datasets:   url + "/v1/datasets",
			Import:     url + "/v1/import",
			MatchRules: url + "/v1/match-rules",
			Templates:  url + "/v1/templates",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
