package environment

import (
	"testing"

	"numbers-bot/internal/config"
	"numbers-bot/internal/stories/catalog"
	"numbers-bot/internal/telegram/callbacks"
)

func TestNewCatalogPresenter(t *testing.T) {
	count := 10
	countries := []catalog.Country{{ID: "1", Name: "Russia", Visible: true}}
	prices := catalog.PriceList{"1": {catalog.ServiceWhatsApp: {Cost: 0.5, Count: &count}}}

	tests := []struct {
		name       string
		cfg        config.CatalogConfig
		wantLabels []string
	}{
		{
			name:       "default allow-list hides uncurated country",
			cfg:        config.CatalogConfig{AllowListEnabled: true, Sort: "catalog"},
			wantLabels: nil,
		},
		{
			name:       "allow-list disabled shows every priced country",
			cfg:        config.CatalogConfig{AllowListEnabled: false, Sort: "catalog"},
			wantLabels: []string{"Russia — $0.5 (10)"},
		},
		{
			name:       "explicit ids extend the allow-list",
			cfg:        config.CatalogConfig{AllowListEnabled: true, AllowedIDs: []string{"1"}, Sort: "catalog"},
			wantLabels: []string{"Russia — $0.5 (10)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := newCatalogPresenter(tt.cfg).BuildCatalogKeyboard(countries, prices, catalog.ServiceWhatsApp)

			buttons := grid.Buttons()
			last := buttons[len(buttons)-1]
			if last.Action.Kind != callbacks.KindDisabled {
				t.Fatalf("last button = %+v, want disabled", last)
			}

			content := buttons[:len(buttons)-1]
			if len(content) != len(tt.wantLabels) {
				t.Fatalf("content buttons = %+v, want labels %v", content, tt.wantLabels)
			}
			for i, want := range tt.wantLabels {
				if content[i].Label != want {
					t.Errorf("label[%d] = %q, want %q", i, content[i].Label, want)
				}
				if content[i].Action.Token() != "country_1" {
					t.Errorf("token[%d] = %q, want country_1", i, content[i].Action.Token())
				}
			}
		})
	}
}
