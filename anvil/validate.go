package anvil

import (
	"errors"
	"fmt"

	"github.com/willf/bitset"
)

// Validate checks the location table for structural damage: entries that
// point into the header, claim zero sectors, run past the end of the file,
// or overlap another chunk's sectors. It returns all problems found, joined.
// Orphaned sectors left behind by relocating writes are not an error.
func (r *Region) Validate() error {
	fileSectors := (len(r.data) + sectorSize - 1) / sectorSize
	used := bitset.New(uint(fileSectors))

	var errs []error
	for i := 0; i < regionSlots; i++ {
		off, cnt := r.location(i)
		if off == 0 && cnt == 0 {
			continue
		}
		x, z := i%32, i/32
		if off < headerSectors {
			errs = append(errs, fmt.Errorf("anvil: chunk (%d,%d) allocated in the header at sector %d", x, z, off))
			continue
		}
		if cnt == 0 {
			errs = append(errs, fmt.Errorf("anvil: chunk (%d,%d) has a zero sector count", x, z))
			continue
		}
		if off+cnt > fileSectors {
			errs = append(errs, fmt.Errorf("anvil: chunk (%d,%d) runs past the end of the file (sectors %d-%d of %d)", x, z, off, off+cnt-1, fileSectors))
			continue
		}
		for s := off; s < off+cnt; s++ {
			if used.Test(uint(s)) {
				errs = append(errs, fmt.Errorf("anvil: chunk (%d,%d) overlaps sector %d", x, z, s))
				break
			}
			used.Set(uint(s))
		}
	}
	return errors.Join(errs...)
}
