package shipping

// Static Paraguay tariff tables. Zones bucket destinations coarser than a
// city; services are the carrier products offered on top of a zone price.

type Zone struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	BaseCost        int64  `json:"base_cost"`
	CostPerKg       int64  `json:"cost_per_kg"`
	DeliveryDaysMin int    `json:"delivery_days_min"`
	DeliveryDaysMax int    `json:"delivery_days_max"`
}

// Services differ in weight ceiling and perks only; the price comes from the
// zone tariff alone.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	MaxWeightKg float64 `json:"max_weight_kg"`
	Tracking    bool    `json:"tracking"`
	Insurance   bool    `json:"insurance"`
}

const DefaultZoneID = "interior"

var zones = []Zone{
	{ID: "asuncion", Name: "Asunción metro", BaseCost: 25000, CostPerKg: 5000, DeliveryDaysMin: 1, DeliveryDaysMax: 2},
	{ID: "central", Name: "Gran Asunción / Central", BaseCost: 30000, CostPerKg: 6000, DeliveryDaysMin: 2, DeliveryDaysMax: 3},
	{ID: "alto-parana", Name: "Alto Paraná", BaseCost: 35000, CostPerKg: 7000, DeliveryDaysMin: 3, DeliveryDaysMax: 5},
	{ID: "itapua", Name: "Itapúa", BaseCost: 35000, CostPerKg: 7000, DeliveryDaysMin: 3, DeliveryDaysMax: 5},
	{ID: DefaultZoneID, Name: "Interior", BaseCost: 45000, CostPerKg: 9000, DeliveryDaysMin: 4, DeliveryDaysMax: 7},
}

// services iterate in declaration order; quoteAll preserves that order on
// cost ties.
var services = []Service{
	{ID: "standard", Name: "Estándar", MaxWeightKg: 25, Tracking: true},
	{ID: "express", Name: "Express", MaxWeightKg: 10, Tracking: true, Insurance: true},
	{ID: "agencia", Name: "Retiro en agencia", MaxWeightKg: 25},
}

// cityZones maps normalized city names to zones; it wins over the department
// table.
var cityZones = map[string]string{
	"asuncion": "asuncion",

	"san lorenzo":          "central",
	"luque":                "central",
	"lambare":              "central",
	"fernando de la mora":  "central",
	"capiata":              "central",
	"nemby":                "central",
	"villa elisa":          "central",
	"mariano roque alonso": "central",
	"limpio":               "central",
	"san antonio":          "central",

	"ciudad del este":    "alto-parana",
	"presidente franco":  "alto-parana",
	"hernandarias":       "alto-parana",
	"minga guazu":        "alto-parana",

	"encarnacion":  "itapua",
	"cambyreta":    "itapua",
	"hohenau":      "itapua",
}

var departmentZones = map[string]string{
	"capital":     "asuncion",
	"central":     "central",
	"alto parana": "alto-parana",
	"itapua":      "itapua",
}
