package proxy

import (
	"net/http"

	"github.com/bricks-cloud/partyrock/internal/provider/partyrock"
	"github.com/gin-gonic/gin"
	goopenai "github.com/sashabaranov/go-openai"
)

type modelList struct {
	Object string           `json:"object"`
	Data   []goopenai.Model `json:"data"`
}

func getModelsHandler() gin.HandlerFunc {
	aliases := partyrock.Models()
	list := goopenai.ModelsList{
		Models: make([]goopenai.Model, 0, len(aliases)),
	}

	for _, alias := range aliases {
		id, _ := partyrock.ResolveModel(alias)
		list.Models = append(list.Models, goopenai.Model{
			ID:      alias,
			Object:  "model",
			OwnedBy: partyrock.Vendor(id),
			Root:    id,
		})
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, &modelList{
			Object: "list",
			Data:   list.Models,
		})
	}
}
