package store

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/soft_delete"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
)

// Rows are never removed. A save flags the previous generation as deleted
// and inserts the new one, so RowID and EntityID are separate columns.

type boardRecord struct {
	RowID    int64 `gorm:"primaryKey;autoIncrement"`
	Strategy int
	Deleted  soft_delete.DeletedAt `gorm:"softDelete:flag;default:0"`
}

func (boardRecord) TableName() string { return "board" }

type cardRecord struct {
	RowID    int64 `gorm:"primaryKey;autoIncrement"`
	EntityID int   `gorm:"index:idx_card_entity"`
	Title    string
	Color    string
	Deleted  soft_delete.DeletedAt `gorm:"softDelete:flag;default:0"`
}

func (cardRecord) TableName() string { return "card" }

type taskRecord struct {
	RowID    int64 `gorm:"primaryKey;autoIncrement"`
	EntityID int   `gorm:"index:idx_task_entity"`
	Title    string
	Color    string
	Hours    int
	DueIn    int
	CardID   int
	Deleted  soft_delete.DeletedAt `gorm:"softDelete:flag;default:0"`
}

func (taskRecord) TableName() string { return "task" }

type checkListRecord struct {
	RowID    int64 `gorm:"primaryKey;autoIncrement"`
	EntityID int   `gorm:"index:idx_checklist_entity"`
	Title    string
	Deleted  soft_delete.DeletedAt `gorm:"softDelete:flag;default:0"`
}

func (checkListRecord) TableName() string { return "checklist" }

type itemRecord struct {
	RowID       int64 `gorm:"primaryKey;autoIncrement"`
	CheckListID int   `gorm:"index:idx_item_checklist"`
	EntityID    int
	Name        string
	Done        bool
	Deleted     soft_delete.DeletedAt `gorm:"softDelete:flag;default:0"`
}

func (itemRecord) TableName() string { return "checklist_item" }

var models = []any{&boardRecord{}, &cardRecord{}, &taskRecord{}, &checkListRecord{}, &itemRecord{}}

func open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to open schedule database: %w", err)
	}
	if err := db.AutoMigrate(models...); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to migrate schedule database: %w", err)
	}
	return db, nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveSQLite replaces the live generation of the board in the database at
// path, creating the file when needed.
func SaveSQLite(path string, snap schedule.Snapshot) (err error) {
	db, err := open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeDB(db); err == nil {
			err = cerr
		}
	}()

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, m := range models {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(&boardRecord{Strategy: int(snap.Strategy)}).Error; err != nil {
			return err
		}
		for _, c := range snap.Cards {
			if err := tx.Create(&cardRecord{EntityID: c.ID, Title: c.Title, Color: c.Color}).Error; err != nil {
				return err
			}
		}
		for _, t := range snap.Tasks {
			rec := &taskRecord{EntityID: t.ID, Title: t.Title, Color: t.Color, Hours: t.Hours, DueIn: t.DueIn, CardID: t.CardID}
			if err := tx.Create(rec).Error; err != nil {
				return err
			}
		}
		for _, cl := range snap.CheckLists {
			if err := tx.Create(&checkListRecord{EntityID: cl.ID, Title: cl.Title}).Error; err != nil {
				return err
			}
			for _, it := range cl.Items {
				if err := tx.Create(&itemRecord{CheckListID: cl.ID, EntityID: it.ID, Name: it.Name, Done: it.Done}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save schedule database: %w", err)
	}
	return nil
}

// LoadSQLite reads the live generation of the board from path.
func LoadSQLite(path string) (snap schedule.Snapshot, err error) {
	db, err := open(path)
	if err != nil {
		return snap, err
	}
	defer func() {
		if cerr := closeDB(db); err == nil {
			err = cerr
		}
	}()

	var boards []boardRecord
	if err := db.Order("row_id desc").Limit(1).Find(&boards).Error; err != nil {
		return snap, fmt.Errorf("failed to read board: %w", err)
	}
	if len(boards) == 0 {
		return snap, fmt.Errorf("schedule database %s holds no board", path)
	}
	snap.Strategy = schedule.Strategy(boards[0].Strategy)

	var cards []cardRecord
	if err := db.Order("entity_id").Find(&cards).Error; err != nil {
		return snap, fmt.Errorf("failed to read cards: %w", err)
	}
	for _, c := range cards {
		snap.Cards = append(snap.Cards, schedule.CardSnapshot{ID: c.EntityID, Title: c.Title, Color: c.Color})
	}

	var tasks []taskRecord
	if err := db.Order("entity_id").Find(&tasks).Error; err != nil {
		return snap, fmt.Errorf("failed to read tasks: %w", err)
	}
	for _, t := range tasks {
		snap.Tasks = append(snap.Tasks, schedule.TaskSnapshot{
			ID: t.EntityID, Title: t.Title, Color: t.Color, Hours: t.Hours, DueIn: t.DueIn, CardID: t.CardID,
		})
	}

	var lists []checkListRecord
	if err := db.Order("entity_id").Find(&lists).Error; err != nil {
		return snap, fmt.Errorf("failed to read checklists: %w", err)
	}
	var items []itemRecord
	if err := db.Order("check_list_id, entity_id").Find(&items).Error; err != nil {
		return snap, fmt.Errorf("failed to read checklist items: %w", err)
	}
	byList := make(map[int][]schedule.ItemSnapshot)
	for _, it := range items {
		byList[it.CheckListID] = append(byList[it.CheckListID], schedule.ItemSnapshot{ID: it.EntityID, Name: it.Name, Done: it.Done})
	}
	for _, cl := range lists {
		snap.CheckLists = append(snap.CheckLists, schedule.CheckListSnapshot{ID: cl.EntityID, Title: cl.Title, Items: byList[cl.EntityID]})
	}
	return snap, nil
}
