// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

package catalog

// Entity type names of the farm record catalog.
const (
	EntityLocations     = "locations"
	EntityFeedTypes     = "feed_types"
	EntityAnimals       = "animals"
	EntityLedgerEntries = "ledger_entries"
	EntityHealthRecords = "health_records"
	EntityFeedEvents    = "feed_events"
)

// Farm returns the catalog of synchronizable farm entities.
//
// Rank assignment follows the foreign keys: locations and feed types stand
// alone, animals reference a location, health records and feed events
// reference an animal (and feed events a feed type).
func Farm() *Catalog {
	return New(
		Descriptor{
			Name:       EntityLocations,
			Table:      "locations",
			Rank:       0,
			Columns:    []string{"name", "area_hectares", "notes"},
			SoftDelete: true,
		},
		Descriptor{
			Name:       EntityFeedTypes,
			Table:      "feed_types",
			Rank:       0,
			Columns:    []string{"name", "unit"},
			SoftDelete: true,
		},
		Descriptor{
			Name:    EntityAnimals,
			Table:   "animals",
			Rank:    1,
			Columns: []string{"location_id", "tag_number", "species", "breed", "sex", "birth_date"},
			Parents: []ParentRef{
				{Column: "location_id", Entity: EntityLocations},
			},
			SoftDelete: true,
		},
		Descriptor{
			Name:       EntityLedgerEntries,
			Table:      "ledger_entries",
			Rank:       1,
			Columns:    []string{"category", "amount_cents", "currency", "entry_date", "description"},
			SoftDelete: true,
		},
		Descriptor{
			Name:    EntityHealthRecords,
			Table:   "health_records",
			Rank:    2,
			Columns: []string{"animal_id", "diagnosis", "treatment", "vet_name", "occurred_on"},
			Parents: []ParentRef{
				{Column: "animal_id", Entity: EntityAnimals},
			},
			SoftDelete: true,
		},
		Descriptor{
			Name:    EntityFeedEvents,
			Table:   "feed_events",
			Rank:    2,
			Columns: []string{"animal_id", "feed_type_id", "quantity", "fed_on"},
			Parents: []ParentRef{
				{Column: "animal_id", Entity: EntityAnimals},
				{Column: "feed_type_id", Entity: EntityFeedTypes},
			},
			SoftDelete: true,
		},
	)
}
