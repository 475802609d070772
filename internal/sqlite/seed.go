// First-run seeding: default level names, a starter site with its units,
// the base global checklist templates, and a starter set of reference
// bearings and fault codes.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/electroterrain/fieldlog/pkg/types"
)

// seedTemplate describes a global checklist template written on first run.
type seedTemplate struct {
	title string
	items []string
}

var seedTemplates = []seedTemplate{
	{
		title: "Consignation / LOTO (base)",
		items: []string{
			"Identifier les énergies (élec, pneu, hydro, gravité…)",
			"Arrêt + sécurisation de la zone",
			"Cadenassage + étiquetage",
			"Vérification d'absence d'énergie (VAT / purge / blocage)",
			"Test de remise sous tension interdite (contrôle)",
			"Fin d'intervention: remontage protections + remise en service contrôlée",
		},
	},
	{
		title: "Remise en service (base)",
		items: []string{
			"Nettoyage zone / retrait outillage",
			"Vérifier capteurs / actionneurs visibles",
			"Retirer consignation selon procédure",
			"Essai à vide / mode manuel",
			"Essai en auto + surveillance",
			"Tracer l'intervention (résultat + à surveiller)",
		},
	},
	{
		title: "Contrôle capteur (base)",
		items: []string{
			"Vérifier alimentation (24V) + polarité",
			"Vérifier câblage / connectique",
			"Vérifier état LED / diagnostic",
			"Tester action (cible) + mesure entrée PLC",
			"Remplacer si doute (ou échange standard)",
			"Valider en production",
		},
	},
}

// seedBearing describes a reference bearing written on first run.
type seedBearing struct {
	ref      string
	d, od, b float64
	typ      string
	note     string
}

var seedBearings = []seedBearing{
	{"6204 2RS", 20, 47, 14, "rigide à billes", "très courant moteurs"},
	{"6205 2RS", 25, 52, 15, "rigide à billes", ""},
	{"6305 ZZ", 25, 62, 17, "rigide à billes", "flasques métalliques"},
	{"22210 E", 50, 90, 23, "rouleaux sphériques", "paliers ventilateurs"},
	{"NU 206", 30, 62, 16, "rouleaux cylindriques", "charge radiale forte"},
}

// seedFault describes a reference fault code written on first run.
type seedFault struct {
	vendor, product, code, title, causes, actions string
}

var seedFaults = []seedFault{
	{
		"Siemens", "S7-1200", "F0001",
		"Surintensité variateur",
		"Court-circuit moteur, câble endommagé, rampe trop courte",
		"Contrôler isolement moteur, vérifier câblage, allonger la rampe",
	},
	{
		"Siemens", "SINAMICS G120", "F30002",
		"Surtension bus continu",
		"Décélération trop rapide, réseau instable",
		"Allonger la rampe de décélération, vérifier résistance de freinage",
	},
	{
		"Schneider", "ATV320", "OCF",
		"Surintensité",
		"Inertie trop forte, blocage mécanique",
		"Vérifier mécanique, adapter les réglages moteur",
	},
	{
		"Schneider", "ATV320", "OHF",
		"Surchauffe variateur",
		"Ventilation encrassée, température armoire élevée",
		"Nettoyer ventilateur et radiateur, contrôler climatisation armoire",
	},
}

// EnsureSeed writes the fixed initial dataset on first run. Guarded by the
// seeded setting and run in one transaction with the flag as its last
// write, so a crash mid-seed leaves the flag unset, nothing persisted, and
// the seed retried on next startup. Idempotent once the flag is set.
func (s *Store) EnsureSeed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}

	st, err := s.getSettingRecord(types.SettingSeeded)
	if err != nil && err != types.ErrNotFound {
		return err
	}
	if err == nil {
		if seeded, ok := st.Value.(bool); ok && seeded {
			return nil
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting seed: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	if err := txPutSetting(tx, &types.Setting{
		Key:   types.SettingLevels,
		Value: types.DefaultLevels,
	}); err != nil {
		return err
	}

	site := &types.Node{
		ID:        newID(),
		Type:      types.NodeTypeSite,
		Level:     0,
		Name:      "Usine A",
		CreatedAt: now,
		Meta:      map[string]string{},
	}
	if err := txPutNode(tx, site); err != nil {
		return err
	}
	for _, name := range []string{"SFA 35", "SFA 36", "SFA 37", "SFA A5"} {
		unit := &types.Node{
			ID:        newID(),
			Type:      types.NodeTypeUnit,
			Level:     1,
			ParentID:  &site.ID,
			Name:      name,
			CreatedAt: now,
			Meta:      map[string]string{},
		}
		if err := txPutNode(tx, unit); err != nil {
			return err
		}
	}

	for _, tpl := range seedTemplates {
		if err := txPutChecklist(tx, &types.Checklist{
			ID:        newID(),
			Scope:     types.ScopeGlobal,
			Title:     tpl.title,
			Items:     types.NewItems(tpl.items),
			UpdatedAt: now,
		}); err != nil {
			return err
		}
	}

	for _, sb := range seedBearings {
		d, od, b := sb.d, sb.od, sb.b
		if err := txPutBearing(tx, &types.Bearing{
			ID:        newID(),
			Ref:       sb.ref,
			D:         &d,
			OD:        &od,
			B:         &b,
			Type:      sb.typ,
			Note:      sb.note,
			CreatedAt: now,
		}); err != nil {
			return err
		}
	}

	for _, sf := range seedFaults {
		if err := txPutFault(tx, &types.Fault{
			ID:        newID(),
			Vendor:    sf.vendor,
			Product:   sf.product,
			Code:      sf.code,
			Title:     sf.title,
			Causes:    sf.causes,
			Actions:   sf.actions,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
	}

	// Last write: a crash before this point leaves the flag unset and the
	// transaction rolled back.
	if err := txPutSetting(tx, &types.Setting{Key: types.SettingSeeded, Value: true}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	s.log.Info().Msg("first-run seed complete")
	return nil
}

func txPutBearing(tx *sql.Tx, b *types.Bearing) error {
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO bearings (id, ref, d, od, b, type, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Ref, nullFloat(b.D), nullFloat(b.OD), nullFloat(b.B),
		b.Type, b.Note, formatTime(b.CreatedAt)); err != nil {
		return fmt.Errorf("inserting bearing %s: %w", b.Ref, err)
	}
	return nil
}

func txPutFault(tx *sql.Tx, f *types.Fault) error {
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO faults
		(id, vendor, product, code, title, causes, actions, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.Vendor, f.Product, f.Code, f.Title, f.Causes, f.Actions, f.Notes,
		formatTime(f.CreatedAt), formatTime(f.UpdatedAt)); err != nil {
		return fmt.Errorf("inserting fault %s: %w", f.Code, err)
	}
	return nil
}
