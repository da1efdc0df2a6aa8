package shipping

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ErrInvalidWeight = errors.New("weight must be greater than zero")

type Quote struct {
	ServiceID       string `json:"service_id"`
	ServiceName     string `json:"service_name"`
	ZoneID          string `json:"zone_id"`
	Cost            int64  `json:"cost"`
	DeliveryDaysMin int    `json:"delivery_days_min"`
	DeliveryDaysMax int    `json:"delivery_days_max"`
	Tracking        bool   `json:"tracking"`
	Insurance       bool   `json:"insurance"`
}

type Resolver struct {
	zones        map[string]Zone
	serviceOrder []Service
}

func NewResolver() *Resolver {
	zm := make(map[string]Zone, len(zones))
	for _, z := range zones {
		zm[z.ID] = z
	}
	return &Resolver{zones: zm, serviceOrder: services}
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize case-folds and strips diacritics so "Asunción" and "asuncion"
// hit the same table row.
func Normalize(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// ResolveZone prefers an exact city match, then the department table, then
// the catch-all zone. Unknown destinations never error.
func (r *Resolver) ResolveZone(city, department string) string {
	if zoneID, ok := cityZones[Normalize(city)]; ok {
		return zoneID
	}
	if zoneID, ok := departmentZones[Normalize(department)]; ok {
		return zoneID
	}
	return DefaultZoneID
}

func (r *Resolver) Zone(zoneID string) (Zone, bool) {
	z, ok := r.zones[zoneID]
	return z, ok
}

func (r *Resolver) Services() []Service {
	return r.serviceOrder
}

// Quote returns nil for a valid "no offer" result: unknown service or zone,
// or weight above the service ceiling. The first kilogram is covered by the
// zone base cost; only weight beyond 1 kg is charged, pro rata per kg, so a
// 1 kg parcel costs exactly the zone base regardless of service.
func (r *Resolver) Quote(serviceID, zoneID string, weightKg float64) (*Quote, error) {
	if weightKg <= 0 {
		return nil, ErrInvalidWeight
	}

	var svc *Service
	for i := range r.serviceOrder {
		if r.serviceOrder[i].ID == serviceID {
			svc = &r.serviceOrder[i]
			break
		}
	}
	if svc == nil {
		return nil, nil
	}
	zone, ok := r.zones[zoneID]
	if !ok {
		return nil, nil
	}
	if weightKg > svc.MaxWeightKg {
		return nil, nil
	}

	extraKg := weightKg - 1
	if extraKg < 0 {
		extraKg = 0
	}
	cost := zone.BaseCost + int64(math.Round(extraKg*float64(zone.CostPerKg)))

	return &Quote{
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		ZoneID:          zone.ID,
		Cost:            cost,
		DeliveryDaysMin: zone.DeliveryDaysMin,
		DeliveryDaysMax: zone.DeliveryDaysMax,
		Tracking:        svc.Tracking,
		Insurance:       svc.Insurance,
	}, nil
}

// QuoteAll quotes every service for the destination, drops "no offer"
// results and sorts ascending by cost. Ties keep service declaration order.
func (r *Resolver) QuoteAll(city, department string, weightKg float64) (string, []Quote, error) {
	if weightKg <= 0 {
		return "", nil, ErrInvalidWeight
	}

	zoneID := r.ResolveZone(city, department)
	quotes := make([]Quote, 0, len(r.serviceOrder))
	for _, svc := range r.serviceOrder {
		q, err := r.Quote(svc.ID, zoneID, weightKg)
		if err != nil {
			return "", nil, err
		}
		if q != nil {
			quotes = append(quotes, *q)
		}
	}

	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].Cost < quotes[j].Cost })
	return zoneID, quotes, nil
}
