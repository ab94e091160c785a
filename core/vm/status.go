package vm

import "github.com/rgeraldes24/evmone/core/state"

// AccessStatus is the Cold/Warm EIP-2929 access state the Host reports to
// the VM. It is State's own AccessStatus type; the Host never invents a
// parallel representation of something State already tracks.
type AccessStatus = state.AccessStatus

const (
	Cold = state.Cold
	Warm = state.Warm
)

// StorageStatus is the nine-way classification of an SSTORE, computed from
// {original, prior current, new value} and handed back to the caller so
// it, not the Host, charges the EIP-2200/3529 gas and refund. Named and
// ordered per the EVMC storage-status convention.
type StorageStatus int

const (
	StorageAssigned StorageStatus = iota
	StorageAdded
	StorageDeleted
	StorageModified
	StorageDeletedAdded
	StorageModifiedDeleted
	StorageDeletedRestored
	StorageAddedDeleted
	StorageModifiedRestored
)

func (s StorageStatus) String() string {
	switch s {
	case StorageAssigned:
		return "assigned"
	case StorageAdded:
		return "added"
	case StorageDeleted:
		return "deleted"
	case StorageModified:
		return "modified"
	case StorageDeletedAdded:
		return "deleted_added"
	case StorageModifiedDeleted:
		return "modified_deleted"
	case StorageDeletedRestored:
		return "deleted_restored"
	case StorageAddedDeleted:
		return "added_deleted"
	case StorageModifiedRestored:
		return "modified_restored"
	default:
		return "unknown"
	}
}

// computeStorageStatus classifies an SSTORE given the slot's original value
// (at transaction start), its value immediately before this write, and the
// new value being written.
func computeStorageStatus(original, current, value [32]byte) StorageStatus {
	dirty := original != current
	restored := original == value
	currentIsZero := current == [32]byte{}
	valueIsZero := value == [32]byte{}

	switch {
	case !dirty && !restored:
		switch {
		case currentIsZero:
			return StorageAdded
		case valueIsZero:
			return StorageDeleted
		default:
			return StorageModified
		}
	case dirty && !restored:
		switch {
		case currentIsZero && !valueIsZero:
			return StorageDeletedAdded
		case !currentIsZero && valueIsZero:
			return StorageModifiedDeleted
		default:
			return StorageAssigned
		}
	case dirty && restored:
		switch {
		case currentIsZero:
			return StorageDeletedRestored
		case valueIsZero:
			return StorageAddedDeleted
		default:
			return StorageModifiedRestored
		}
	default:
		return StorageAssigned
	}
}
