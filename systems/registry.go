package systems

// SystemInfo describes a frame phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (matches telemetry phase names)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "input", "physics")
}

// SystemRegistry holds metadata about all frame phases.
// This keeps the perf panel labels and the perf collector in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]int
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]int),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the phases in frame order.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: "input", Name: "Input", Description: "Resolves action bindings", Category: "input"})
	r.Register(SystemInfo{ID: "rules", Name: "Rules", Description: "Movement, shooting and spawning", Category: "gameplay"})
	r.Register(SystemInfo{ID: "integrate", Name: "Integrate", Description: "Advances positions and culls strays", Category: "physics"})
	r.Register(SystemInfo{ID: "collision", Name: "Collision", Description: "Pairwise overlap and impulse response", Category: "physics"})
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Window stats and CSV output", Category: "telemetry"})
}

// Register adds a phase to the registry. Re-registering an ID replaces its info.
func (r *SystemRegistry) Register(info SystemInfo) {
	if i, ok := r.byID[info.ID]; ok {
		r.systems[i] = info
		return
	}
	r.byID[info.ID] = len(r.systems)
	r.systems = append(r.systems, info)
}

// All returns all registered phases in registration order.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// Categories returns the distinct categories in order of first appearance.
func (r *SystemRegistry) Categories() []string {
	var cats []string
	seen := make(map[string]bool)
	for _, info := range r.All() {
		if !seen[info.Category] {
			seen[info.Category] = true
			cats = append(cats, info.Category)
		}
	}
	return cats
}

// ByCategory returns phases filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}
