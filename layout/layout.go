// Package layout holds the calibrated field offsets the decoders read through.
//
// Every structure layoutkit decodes is reverse-engineered and moves between
// host builds. Rather than hardcoding one build, each decoder takes the
// sub-table for its record kind; a Table groups the sub-tables for one range
// of host versions and a Registry picks the Table for a detected version.
//
// Offsets are byte offsets from the start of the record. Bit masks inside
// packed fields do not move between builds and live next to their decoders as
// named constants.
package layout

// SlotPool describes a generation-counted object pool header.
//
//	Field      Width  Meaning
//	Base       8      pointer to slot 0
//	Occupancy  8      pointer to one occupancy byte per slot
//	Count      4      slot capacity
//	SlotSize   4      bytes per slot
//	Used       4      live slot count (low 30 bits)
type SlotPool struct {
	Base      uint32 `yaml:"base"`
	Occupancy uint32 `yaml:"occupancy"`
	Count     uint32 `yaml:"count"`
	SlotSize  uint32 `yaml:"slot_size"`
	Used      uint32 `yaml:"used"`
}

// BitmapPool describes a pool whose occupancy is one bit per slot.
// Stride is not stored in the host header and comes from calibration.
type BitmapPool struct {
	Base   uint32 `yaml:"base"`
	Count  uint32 `yaml:"count"`
	Bitmap uint32 `yaml:"bitmap"`
	Stride uint32 `yaml:"stride"`
}

// HashTable describes an open-hash table header and its chain entries.
type HashTable struct {
	Buckets      uint32 `yaml:"buckets"`       // pointer to bucket head array
	BucketCount  uint32 `yaml:"bucket_count"`  // uint16
	ElementCount uint32 `yaml:"element_count"` // uint16
	EntryHash    uint32 `yaml:"entry_hash"`    // uint32
	EntryValue   uint32 `yaml:"entry_value"`
	ValueSize    uint32 `yaml:"value_size"` // 4 or 8
	EntryNext    uint32 `yaml:"entry_next"` // pointer
}

// PathNode describes one road-network node record.
type PathNode struct {
	Size       uint32 `yaml:"size"`
	AreaID     uint32 `yaml:"area_id"`     // uint16
	NodeID     uint32 `yaml:"node_id"`     // uint16
	StreetName uint32 `yaml:"street_name"` // uint32 hash
	LinkStart  uint32 `yaml:"link_start"`  // uint16
	PosX       uint32 `yaml:"pos_x"`       // int16, /4
	PosY       uint32 `yaml:"pos_y"`       // int16, /4
	PosZ       uint32 `yaml:"pos_z"`       // int16, /32
	Flags0     uint32 `yaml:"flags0"`
	Flags1     uint32 `yaml:"flags1"`
	Flags2     uint32 `yaml:"flags2"`
	Flags3     uint32 `yaml:"flags3"`
}

// PathLink describes one road-network link record.
type PathLink struct {
	Size   uint32 `yaml:"size"`
	AreaID uint32 `yaml:"area_id"` // uint16
	NodeID uint32 `yaml:"node_id"` // uint16
	Flags  uint32 `yaml:"flags"`
	Lanes  uint32 `yaml:"lanes"`
	Length uint32 `yaml:"length"` // uint8
}

// PathRegion describes a streamed region container.
type PathRegion struct {
	Nodes     uint32 `yaml:"nodes"`      // pointer
	NodeCount uint32 `yaml:"node_count"` // uint32
	Links     uint32 `yaml:"links"`      // pointer
	LinkCount uint32 `yaml:"link_count"` // uint32
}

// PathStore describes the global path store holding region pointers.
type PathStore struct {
	Regions     uint32    `yaml:"regions"`      // inline array of region pointers
	RegionCount uint32    `yaml:"region_count"` // fixed grid size, not read from memory
	StreetNames uint32    `yaml:"street_names"` // inline hash table header
	NameTable   HashTable `yaml:"name_table"`
}

// Path groups the road-network layouts.
type Path struct {
	Node   PathNode   `yaml:"node"`
	Link   PathLink   `yaml:"link"`
	Region PathRegion `yaml:"region"`
	Store  PathStore  `yaml:"store"`
}

// Skeleton describes skeleton data and its bone records.
type Skeleton struct {
	IDMap       uint32    `yaml:"id_map"`     // inline hash table header
	Bones       uint32    `yaml:"bones"`      // pointer to bone records
	BoneCount   uint32    `yaml:"bone_count"` // uint16
	BoneSize    uint32    `yaml:"bone_size"`
	BoneSibling uint32    `yaml:"bone_sibling"` // uint16, 0xFFFF = none
	BoneParent  uint32    `yaml:"bone_parent"`  // uint16, 0xFFFF = none
	BoneName    uint32    `yaml:"bone_name"`    // pointer
	BoneID      uint32    `yaml:"bone_id"`      // uint16
	IDTable     HashTable `yaml:"id_table"`
}

// Fragment describes the fragment instance to type-child pointer chain.
type Fragment struct {
	InstType        uint32 `yaml:"inst_type"`         // pointer
	InstSelector    uint32 `yaml:"inst_selector"`     // int32
	InstDamageRatio uint32 `yaml:"inst_damage_ratio"` // float32
	TypeLODGroup    uint32 `yaml:"type_lod_group"`    // pointer
	GroupLODs       uint32 `yaml:"group_lods"`        // inline array of 3 pointers
	LODChildren     uint32 `yaml:"lod_children"`      // pointer to array of child pointers
	LODChildCount   uint32 `yaml:"lod_child_count"`   // uint8
	ChildPristine   uint32 `yaml:"child_pristine"`    // float32
	ChildDamaged    uint32 `yaml:"child_damaged"`     // float32
	ChildBoneIndex  uint32 `yaml:"child_bone_index"`  // uint16
	ChildGroup      uint32 `yaml:"child_group"`       // uint8
}

// Limits bound every walk over host memory so a corrupt count or a cycle
// cannot turn into unbounded work.
type Limits struct {
	MaxChain   int `yaml:"max_chain"`
	MaxName    int `yaml:"max_name"`
	MaxSlots   int `yaml:"max_slots"`
	MaxBuckets int `yaml:"max_buckets"`
}

// DefaultLimits are applied to any zero field of a Table's Limits.
var DefaultLimits = Limits{
	MaxChain:   4096,
	MaxName:    256,
	MaxSlots:   1 << 20,
	MaxBuckets: 1 << 16,
}

// Table is the full calibration for a range of host versions.
type Table struct {
	Name       string     `yaml:"name"`
	Versions   string     `yaml:"versions"` // semver constraint
	SlotPool   SlotPool   `yaml:"slot_pool"`
	BitmapPool BitmapPool `yaml:"bitmap_pool"`
	Path       Path       `yaml:"path"`
	Skeleton   Skeleton   `yaml:"skeleton"`
	Fragment   Fragment   `yaml:"fragment"`
	Limits     Limits     `yaml:"limits"`
}

// WithDefaults fills every non-positive field from DefaultLimits.
func (l Limits) WithDefaults() Limits {
	if l.MaxChain <= 0 {
		l.MaxChain = DefaultLimits.MaxChain
	}
	if l.MaxName <= 0 {
		l.MaxName = DefaultLimits.MaxName
	}
	if l.MaxSlots <= 0 {
		l.MaxSlots = DefaultLimits.MaxSlots
	}
	if l.MaxBuckets <= 0 {
		l.MaxBuckets = DefaultLimits.MaxBuckets
	}
	return l
}
