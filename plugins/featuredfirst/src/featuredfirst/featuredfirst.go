package featuredfirst

import (
	"go.storeblocks.app/app/pkgs/plugintypes"
)

type plugin struct {
	app    plugintypes.App
	config map[string]any
}

func GetPlugin() plugintypes.SellerQueryModifier {
	return &plugin{}
}

// SetApp
func (p *plugin) SetApp(app plugintypes.App) {
	p.app = app
}

// SetConfig
func (p *plugin) SetConfig(config map[string]any) {
	p.config = config
}

// SellerQueryModifier: pin featured sellers first unless the visitor
// picked an explicit sort order.
func (p *plugin) ModifySellerQuery(q plugintypes.SellerQuery) {
	if q.SortKey() == "name" || q.SortKey() == "" {
		q.SetSortKey("featured")
	}
}
