// internal/catalog/programs.go
package catalog

import (
	"cardwise/internal/domain"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type programsFile struct {
	Programs []domain.MilestoneProgram `toml:"program"`
}

// ParsePrograms reads milestone programs from TOML:
//
//	[[program]]
//	id = "AXIS_ATLAS_MILESTONES"
//	default_value = 2500
//	tiers = [{ threshold = 300000, value = 5000 }]
func ParsePrograms(data string) (domain.MilestonePrograms, error) {
	var f programsFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("decode milestone programs: %w", err)
	}

	programs := make(domain.MilestonePrograms, len(f.Programs))
	for _, p := range f.Programs {
		if p.ID == "" {
			return nil, fmt.Errorf("milestone program without id")
		}
		if _, dup := programs[p.ID]; dup {
			return nil, fmt.Errorf("duplicate milestone program %q", p.ID)
		}
		for _, t := range p.Tiers {
			if t.Threshold < 0 || t.Value < 0 {
				return nil, fmt.Errorf("program %q: tier values must be non-negative", p.ID)
			}
		}
		programs[p.ID] = p.Normalized()
	}
	return programs, nil
}

// LoadProgramsFile returns nil programs for an empty path.
func LoadProgramsFile(path string) (domain.MilestonePrograms, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read milestone programs file: %w", err)
	}
	return ParsePrograms(string(data))
}
