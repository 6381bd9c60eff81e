package layout

import (
	"fmt"

	"github.com/joshuapare/layoutkit/pkg/types"
)

type field struct {
	name  string
	off   uint32
	width uint32
}

func checkRecord(record string, size uint32, fields ...field) error {
	if size == 0 {
		return fmt.Errorf("%s: record size is zero", record)
	}
	for _, f := range fields {
		if uint64(f.off)+uint64(f.width) > uint64(size) {
			return fmt.Errorf("%s.%s: 0x%x+%d exceeds record size 0x%x", record, f.name, f.off, f.width, size)
		}
	}
	return nil
}

func checkHashTable(name string, h HashTable) error {
	if h.ValueSize != 4 && h.ValueSize != 8 {
		return fmt.Errorf("%s: value_size must be 4 or 8, got %d", name, h.ValueSize)
	}
	if h.EntryHash == h.EntryNext || h.EntryValue == h.EntryNext {
		return fmt.Errorf("%s: entry fields overlap the next pointer", name)
	}
	return nil
}

// Validate reports the first structural problem in t as a *types.Error of
// kind ErrKindFormat.
func (t *Table) Validate() error {
	if err := t.validate(); err != nil {
		name := t.Name
		if name == "" {
			name = "<unnamed>"
		}
		return types.ErrBadLayout.Wrap(fmt.Errorf("table %s: %w", name, err))
	}
	return nil
}

func (t *Table) validate() error {
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	if t.Versions == "" {
		return fmt.Errorf("versions constraint is required")
	}
	if t.SlotPool.Base == t.SlotPool.Occupancy {
		return fmt.Errorf("slot_pool: base and occupancy share offset 0x%x", t.SlotPool.Base)
	}
	if t.BitmapPool.Stride == 0 {
		return fmt.Errorf("bitmap_pool: stride is zero")
	}

	n := t.Path.Node
	if err := checkRecord("path.node", n.Size,
		field{"area_id", n.AreaID, 2},
		field{"node_id", n.NodeID, 2},
		field{"street_name", n.StreetName, 4},
		field{"link_start", n.LinkStart, 2},
		field{"pos_x", n.PosX, 2},
		field{"pos_y", n.PosY, 2},
		field{"pos_z", n.PosZ, 2},
		field{"flags0", n.Flags0, 1},
		field{"flags1", n.Flags1, 1},
		field{"flags2", n.Flags2, 1},
		field{"flags3", n.Flags3, 1},
	); err != nil {
		return err
	}

	l := t.Path.Link
	if err := checkRecord("path.link", l.Size,
		field{"area_id", l.AreaID, 2},
		field{"node_id", l.NodeID, 2},
		field{"flags", l.Flags, 1},
		field{"lanes", l.Lanes, 1},
		field{"length", l.Length, 1},
	); err != nil {
		return err
	}

	if t.Path.Store.RegionCount == 0 || t.Path.Store.RegionCount > 0xFFFF {
		return fmt.Errorf("path.store: region_count %d out of range", t.Path.Store.RegionCount)
	}
	if err := checkHashTable("path.store.name_table", t.Path.Store.NameTable); err != nil {
		return err
	}

	s := t.Skeleton
	if err := checkRecord("skeleton.bone", s.BoneSize,
		field{"bone_sibling", s.BoneSibling, 2},
		field{"bone_parent", s.BoneParent, 2},
		field{"bone_name", s.BoneName, 8},
		field{"bone_id", s.BoneID, 2},
	); err != nil {
		return err
	}
	if err := checkHashTable("skeleton.id_table", s.IDTable); err != nil {
		return err
	}

	lim := t.Limits
	if lim.MaxChain < 0 || lim.MaxName < 0 || lim.MaxSlots < 0 || lim.MaxBuckets < 0 {
		return fmt.Errorf("limits: negative value in %+v", lim)
	}
	return nil
}
