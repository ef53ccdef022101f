package domain

import (
	"fmt"
	"math"
)

// Chart sizes used by the analytics page.
const (
	BarSeriesLimit = 10
	PieSeriesLimit = 6
)

// RegionDiseases groups disease counts under a region.
type RegionDiseases struct {
	Region   string         `json:"region"`
	Diseases []DiseaseCount `json:"diseases"`
}

// ProductConversion is how often a product's views turn into purchases.
type ProductConversion struct {
	ProductName    string  `json:"product_name"`
	Views          int     `json:"views"`
	Purchases      int     `json:"purchases"`
	ConversionRate float64 `json:"conversion_rate"`
}

// FarmerEngagement is monthly platform activity.
type FarmerEngagement struct {
	Month         string `json:"month"`
	ActiveFarmers int    `json:"active_farmers"`
	Scans         int    `json:"scans"`
	Orders        int    `json:"orders"`
}

// AnalyticsData is the backend's analytics payload.
type AnalyticsData struct {
	RegionWiseDiseases []RegionDiseases    `json:"region_wise_diseases"`
	ProductConversion  []ProductConversion `json:"product_conversion"`
	FarmerEngagement   []FarmerEngagement  `json:"farmer_engagement"`
}

// RegionDisease is a disease count, tagged with its region when several
// regions are shown together.
type RegionDisease struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Region string `json:"region,omitempty"`
}

// PieSlice is one sector of the distribution chart.
type PieSlice struct {
	Name  string  `json:"name"`
	Value int     `json:"value"`
	Share float64 `json:"share"`
	Label string  `json:"label"`
}

// Regions lists region names in backend order.
func (a AnalyticsData) Regions() []string {
	out := make([]string, 0, len(a.RegionWiseDiseases))
	for _, r := range a.RegionWiseDiseases {
		out = append(out, r.Region)
	}
	return out
}

// DiseasesFor returns the disease counts for region. FilterAll (or "")
// flattens every region in order, tagging each entry with its region. An
// unknown region yields an empty list.
func (a AnalyticsData) DiseasesFor(region string) []RegionDisease {
	out := []RegionDisease{}
	if region == "" || region == FilterAll {
		for _, r := range a.RegionWiseDiseases {
			for _, d := range r.Diseases {
				out = append(out, RegionDisease{Name: d.Name, Count: d.Count, Region: r.Region})
			}
		}
		return out
	}
	for _, r := range a.RegionWiseDiseases {
		if r.Region != region {
			continue
		}
		for _, d := range r.Diseases {
			out = append(out, RegionDisease{Name: d.Name, Count: d.Count})
		}
		break
	}
	return out
}

// BarSeries returns at most the first BarSeriesLimit entries.
func BarSeries(d []RegionDisease) []RegionDisease {
	return d[:min(len(d), BarSeriesLimit)]
}

// PieSeries turns the first PieSeriesLimit entries into slices whose share
// is relative to the total of those slices.
func PieSeries(d []RegionDisease) []PieSlice {
	d = d[:min(len(d), PieSeriesLimit)]

	total := 0
	for _, e := range d {
		total += e.Count
	}

	out := make([]PieSlice, 0, len(d))
	for _, e := range d {
		share := 0.0
		if total > 0 {
			share = float64(e.Count) / float64(total)
		}
		out = append(out, PieSlice{
			Name:  e.Name,
			Value: e.Count,
			Share: share,
			Label: fmt.Sprintf("%s: %d%%", e.Name, int(math.Round(share*100))),
		})
	}
	return out
}

// AnalyticsView is the analytics page model for one region selection.
type AnalyticsView struct {
	Regions           []string            `json:"regions"`
	SelectedRegion    string              `json:"selected_region"`
	Diseases          []RegionDisease     `json:"diseases"`
	BarSeries         []RegionDisease     `json:"bar_series"`
	PieSeries         []PieSlice          `json:"pie_series"`
	ProductConversion []ProductConversion `json:"product_conversion"`
	FarmerEngagement  []FarmerEngagement  `json:"farmer_engagement"`
}

// NewAnalyticsView shapes data for region.
func NewAnalyticsView(data AnalyticsData, region string) AnalyticsView {
	if region == "" {
		region = FilterAll
	}
	diseases := data.DiseasesFor(region)

	view := AnalyticsView{
		Regions:           data.Regions(),
		SelectedRegion:    region,
		Diseases:          diseases,
		BarSeries:         BarSeries(diseases),
		PieSeries:         PieSeries(diseases),
		ProductConversion: data.ProductConversion,
		FarmerEngagement:  data.FarmerEngagement,
	}
	if view.ProductConversion == nil {
		view.ProductConversion = []ProductConversion{}
	}
	if view.FarmerEngagement == nil {
		view.FarmerEngagement = []FarmerEngagement{}
	}
	return view
}
