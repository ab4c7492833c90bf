package coord

import (
	"sort"
	"strings"
)

// City is an entry in the provider's city registry.
type City struct {
	Name string `json:"name" yaml:"name"`
	ID   int    `json:"cid" yaml:"cid"`
}

var cities = map[string]int{
	"北京市": 131,
	"上海市": 289,
	"广州市": 257,
	"深圳市": 340,
	"南京市": 315,
	"天津市": 332,
	"成都市": 75,
}

// Alternate spellings seen in upstream data.
var cityAliases = map[string]string{
	"成都市市": "成都市",
}

// CityID returns the provider city identifier for name.
// A missing trailing "市" is tolerated.
func CityID(name string) (int, bool) {
	name = strings.TrimSpace(name)
	if alias, ok := cityAliases[name]; ok {
		name = alias
	}
	if id, ok := cities[name]; ok {
		return id, true
	}
	id, ok := cities[name+"市"]
	return id, ok
}

// Cities returns the registry sorted by identifier.
func Cities() []City {
	list := make([]City, 0, len(cities))
	for name, id := range cities {
		list = append(list, City{Name: name, ID: id})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
