package pricing

import (
	"fmt"
	"math"

	"github.com/JonBeak/signquote/internal/catalog"
	"github.com/JonBeak/signquote/internal/model"
)

// SupplyInput is everything the power supply selector needs for one row.
// Overrides are nil/empty when the corresponding field was left blank.
type SupplyInput struct {
	TotalWattage  float64
	RequireUL     bool
	TypeOverride  string
	CountOverride *int
	PriceOverride *float64
	Prefs         model.CustomerPreferences
}

// SelectPowerSupplies resolves the power supply components for one row.
//
// Decision order: an explicit count override is honored verbatim against
// the resolved type; otherwise, when UL coverage is required and no
// incompatible explicit type blocks it, the two-SKU packing optimization
// runs over the catalog's UL-listed supplies; otherwise the resolved type's
// capacity divides the load. An explicit type override with zero computed
// wattage still yields exactly one unit.
func SelectPowerSupplies(cat *catalog.Catalog, in SupplyInput) model.PowerSupplySelection {
	if cat == nil {
		return model.PowerSupplySelection{Error: "power supply catalog is unavailable"}
	}

	if in.CountOverride != nil {
		count := *in.CountOverride
		if count <= 0 {
			return model.PowerSupplySelection{}
		}
		ps, err := resolveSupplyType(cat, in)
		if err != nil {
			return model.PowerSupplySelection{Error: err.Error()}
		}
		return selectionOf(in, unitsOf(ps, count))
	}

	if in.TotalWattage <= 0 {
		if in.TypeOverride == "" {
			return model.PowerSupplySelection{}
		}
		ps, err := cat.PowerSupply(in.TypeOverride)
		if err != nil {
			return model.PowerSupplySelection{Error: err.Error()}
		}
		return selectionOf(in, unitsOf(ps, 1))
	}

	if in.RequireUL && ulPackingApplies(cat, in.TypeOverride) {
		return packUL(cat, in)
	}

	ps, err := resolveSupplyType(cat, in)
	if err != nil {
		return model.PowerSupplySelection{Error: err.Error()}
	}
	count := int(math.Ceil(in.TotalWattage / ps.Watts))
	return selectionOf(in, unitsOf(ps, count))
}

// resolveSupplyType picks the supply SKU for the non-packing paths:
// explicit override, then the customer preference filtered to UL-listed
// entries when UL is required, then the system default.
func resolveSupplyType(cat *catalog.Catalog, in SupplyInput) (catalog.PowerSupply, error) {
	if in.TypeOverride != "" {
		return cat.PowerSupply(in.TypeOverride)
	}

	code := in.Prefs.PowerSupplyType
	if code == "" {
		code = model.DefaultPowerSupplyType
	}
	ps, err := cat.PowerSupply(code)
	if err != nil {
		return catalog.PowerSupply{}, err
	}
	if in.RequireUL && !ps.ULListed {
		ul := cat.ULPowerSupplies()
		if len(ul) == 0 {
			return catalog.PowerSupply{}, fmt.Errorf("no UL-listed power supplies in the catalog")
		}
		return largestByWatts(ul), nil
	}
	return ps, nil
}

// ulPackingApplies reports whether the two-SKU optimization may run: either
// no explicit type is set, or the explicit type is itself UL-listed.
func ulPackingApplies(cat *catalog.Catalog, typeOverride string) bool {
	if typeOverride == "" {
		return true
	}
	ps, err := cat.PowerSupply(typeOverride)
	return err == nil && ps.ULListed
}

// packUL minimizes unit count while guaranteeing UL-listed coverage. With a
// low-capacity SKU s and high-capacity SKU l, a remainder load under
// s.Watts rides on one s; anything larger rounds up to an extra l.
func packUL(cat *catalog.Catalog, in SupplyInput) model.PowerSupplySelection {
	ul := cat.ULPowerSupplies()
	if len(ul) == 0 {
		return model.PowerSupplySelection{Error: "no UL-listed power supplies in the catalog"}
	}

	large := largestByWatts(ul)
	small := smallestByWatts(ul)

	remainder := math.Mod(in.TotalWattage, large.Watts)
	switch {
	case remainder == 0:
		return selectionOf(in, unitsOf(large, int(math.Round(in.TotalWattage/large.Watts))))
	case remainder < small.Watts:
		units := []supplyUnits{unitsOf(small, 1)}
		if full := int(math.Floor(in.TotalWattage / large.Watts)); full > 0 {
			units = append(units, unitsOf(large, full))
		}
		return selectionOf(in, units...)
	default:
		return selectionOf(in, unitsOf(large, int(math.Ceil(in.TotalWattage/large.Watts))))
	}
}

type supplyUnits struct {
	supply catalog.PowerSupply
	count  int
}

func unitsOf(ps catalog.PowerSupply, count int) supplyUnits {
	return supplyUnits{supply: ps, count: count}
}

func selectionOf(in SupplyInput, units ...supplyUnits) model.PowerSupplySelection {
	var sel model.PowerSupplySelection
	for _, u := range units {
		price := u.supply.Price
		if in.PriceOverride != nil {
			price = *in.PriceOverride
		}
		count := u.count
		sel.Components = append(sel.Components, model.ComponentItem{
			Name:             u.supply.Name,
			UnitPrice:        price,
			Type:             "power_supply",
			Calculation:      fmt.Sprintf("%d x %s at $%.2f each", count, u.supply.Name, price),
			QuantityOverride: &count,
		})
		sel.TotalCount += count
	}
	return sel
}

func largestByWatts(supplies []catalog.PowerSupply) catalog.PowerSupply {
	best := supplies[0]
	for _, ps := range supplies[1:] {
		if ps.Watts > best.Watts {
			best = ps
		}
	}
	return best
}

func smallestByWatts(supplies []catalog.PowerSupply) catalog.PowerSupply {
	best := supplies[0]
	for _, ps := range supplies[1:] {
		if ps.Watts < best.Watts {
			best = ps
		}
	}
	return best
}
