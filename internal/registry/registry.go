package registry

// Truck is static reference data: immutable for the session, never created or
// deleted at runtime.
type Truck struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Registry holds the truck fleet the scanner validates against.
type Registry struct {
	trucks []Truck
}

func New(trucks []Truck) *Registry {
	return &Registry{trucks: append([]Truck(nil), trucks...)}
}

// Default returns the built-in fleet.
func Default() *Registry {
	return New(defaultTrucks())
}

// Trucks returns the fleet in display order.
func (r *Registry) Trucks() []Truck {
	return append([]Truck(nil), r.trucks...)
}

// TruckByID resolves a truck id to its reference entry.
func (r *Registry) TruckByID(id string) (Truck, bool) {
	for _, t := range r.trucks {
		if t.ID == id {
			return t, true
		}
	}
	return Truck{}, false
}

// TruckName returns the display name for an id, falling back to the id itself
// when the truck is unknown.
func (r *Registry) TruckName(id string) string {
	if t, ok := r.TruckByID(id); ok {
		return t.Name
	}
	return id
}

func defaultTrucks() []Truck {
	return []Truck{
		{ID: "TRUCK-A", Name: "Truck A (North)", Color: "blue"},
		{ID: "TRUCK-B", Name: "Truck B (South)", Color: "green"},
		{ID: "TRUCK-C", Name: "Truck C (City)", Color: "purple"},
		{ID: "TRUCK-D", Name: "Express Van", Color: "orange"},
	}
}
