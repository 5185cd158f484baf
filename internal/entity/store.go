package entity

import (
	"errors"
	"fmt"

	"github.com/samdwyer/rogue1980/internal/gamedata"
	"github.com/samdwyer/rogue1980/internal/world"
)

var (
	// ErrNotFound means an entity or item ID does not exist (or was removed).
	ErrNotFound = errors.New("not found")
	// ErrOccupiedTile means the target tile is a wall or holds another living entity.
	ErrOccupiedTile = errors.New("tile is occupied")
	// ErrDead means the operation needs a living entity.
	ErrDead = errors.New("entity is dead")
	// ErrInventoryFull means the owner already carries MaxPerKind items of that kind.
	ErrInventoryFull = errors.New("inventory is full")
)

// Store owns every entity and item on the current level.
// Entities are mutated in place and referenced elsewhere only by ID.
type Store struct {
	grid *world.Grid

	entities map[ID]*Entity
	order    []ID
	nextID   ID
	player   ID

	items     map[ItemID]*Item
	itemOrder []ItemID
	nextItem  ItemID
}

// NewStore creates an empty store for a level grid.
func NewStore(grid *world.Grid) *Store {
	return &Store{
		grid:     grid,
		entities: make(map[ID]*Entity),
		nextID:   1,
		items:    make(map[ItemID]*Item),
		nextItem: 1,
	}
}

// Spawn creates an entity at pos and returns its ID.
// Health is clamped to [0, MaxHealth]; an entity spawned with no health is dead.
func (s *Store) Spawn(kind Kind, name string, pos world.Position, stats Stats) (ID, error) {
	if err := s.checkFree(pos, 0); err != nil {
		return 0, err
	}
	if kind == KindPlayer && s.player != 0 {
		return 0, fmt.Errorf("spawn player: player %d already exists", s.player)
	}

	stats.normalize()
	e := &Entity{
		ID:    s.nextID,
		Kind:  kind,
		Name:  name,
		Pos:   pos,
		Stats: stats,
		Alive: stats.Health > 0,
	}
	s.nextID++
	s.entities[e.ID] = e
	s.order = append(s.order, e.ID)
	if kind == KindPlayer {
		s.player = e.ID
	}
	return e.ID, nil
}

// Get returns the entity with the given ID.
func (s *Store) Get(id ID) (*Entity, error) {
	e, ok := s.entities[id]
	if !ok {
		return nil, fmt.Errorf("entity %d: %w", id, ErrNotFound)
	}
	return e, nil
}

// PlayerID returns the player's ID, or 0 if no player was spawned.
func (s *Store) PlayerID() ID {
	return s.player
}

// Player returns the player entity.
func (s *Store) Player() (*Entity, error) {
	return s.Get(s.player)
}

// AllLiving returns the IDs of living entities in spawn order.
func (s *Store) AllLiving() []ID {
	out := make([]ID, 0, len(s.order))
	for _, id := range s.order {
		if s.entities[id].Alive {
			out = append(out, id)
		}
	}
	return out
}

// All returns every entity ID, living or dead, in spawn order.
func (s *Store) All() []ID {
	out := make([]ID, len(s.order))
	copy(out, s.order)
	return out
}

// At returns the living entity standing on pos.
func (s *Store) At(pos world.Position) (ID, bool) {
	for _, id := range s.order {
		if e := s.entities[id]; e.Alive && e.Pos == pos {
			return id, true
		}
	}
	return 0, false
}

// Move places an entity on pos.
// It fails with ErrOccupiedTile when pos is impassable or holds another living entity.
func (s *Store) Move(id ID, pos world.Position) error {
	e, err := s.Get(id)
	if err != nil {
		return err
	}
	if !e.Alive {
		return fmt.Errorf("move entity %d: %w", id, ErrDead)
	}
	if err := s.checkFree(pos, id); err != nil {
		return err
	}
	e.Pos = pos
	return nil
}

// checkFree reports whether pos can hold an entity other than self.
func (s *Store) checkFree(pos world.Position, self ID) error {
	if !s.grid.IsPassable(pos) {
		return fmt.Errorf("%w: %v is %s", ErrOccupiedTile, pos, s.grid.At(pos).Kind)
	}
	if other, ok := s.At(pos); ok && other != self {
		return fmt.Errorf("%w: %v holds entity %d", ErrOccupiedTile, pos, other)
	}
	return nil
}

// ApplyDamage lowers health, never below zero, and returns the damage dealt.
// An entity whose health reaches zero dies.
func (s *Store) ApplyDamage(id ID, amount int) (int, error) {
	e, err := s.Get(id)
	if err != nil {
		return 0, err
	}
	return e.takeDamage(amount), nil
}

// Heal raises health, never above max health, and returns the amount healed.
func (s *Store) Heal(id ID, amount int) (int, error) {
	e, err := s.Get(id)
	if err != nil {
		return 0, err
	}
	return e.heal(amount), nil
}

// Remove deletes an entity. Items it carried are dropped where it stood.
func (s *Store) Remove(id ID) {
	e, ok := s.entities[id]
	if !ok {
		return
	}
	for _, itemID := range s.Inventory(id) {
		s.drop(itemID, e.Pos)
	}
	delete(s.entities, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.player == id {
		s.player = 0
	}
}

// EffectiveAttack returns base attack plus the equipped weapon's bonus.
func (s *Store) EffectiveAttack(id ID) (int, error) {
	e, err := s.Get(id)
	if err != nil {
		return 0, err
	}
	attack := e.Stats.Attack
	if w, ok := s.items[e.Weapon]; ok {
		attack += w.Effect.Attack
	}
	return attack, nil
}

// EffectiveDefense returns base defense plus the equipped armor's bonus.
func (s *Store) EffectiveDefense(id ID) (int, error) {
	e, err := s.Get(id)
	if err != nil {
		return 0, err
	}
	defense := e.Stats.Defense
	if a, ok := s.items[e.Armor]; ok {
		defense += a.Effect.Defense
	}
	return defense, nil
}

// =============================================================================
// Items
// =============================================================================

// AddItem creates an item from a definition lying on pos.
func (s *Store) AddItem(def gamedata.ItemDef, effect gamedata.Effect, pos world.Position) (ItemID, error) {
	if !s.grid.IsPassable(pos) {
		return 0, fmt.Errorf("%w: cannot place item on %s at %v", ErrOccupiedTile, s.grid.At(pos).Kind, pos)
	}
	p := pos
	it := &Item{
		ID:     s.nextItem,
		DefID:  def.ID,
		Name:   def.Name,
		Kind:   def.Kind,
		Effect: effect,
		Pos:    &p,
	}
	s.nextItem++
	s.items[it.ID] = it
	s.itemOrder = append(s.itemOrder, it.ID)
	return it.ID, nil
}

// Item returns the item with the given ID.
func (s *Store) Item(id ItemID) (*Item, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return it, nil
}

// Items returns every item ID in creation order.
func (s *Store) Items() []ItemID {
	out := make([]ItemID, len(s.itemOrder))
	copy(out, s.itemOrder)
	return out
}

// ItemsAt returns the items lying on pos in creation order.
func (s *Store) ItemsAt(pos world.Position) []ItemID {
	var out []ItemID
	for _, id := range s.itemOrder {
		if it := s.items[id]; it.Pos != nil && *it.Pos == pos {
			out = append(out, id)
		}
	}
	return out
}

// Inventory returns the items carried by owner in creation order.
func (s *Store) Inventory(owner ID) []ItemID {
	var out []ItemID
	for _, id := range s.itemOrder {
		if it := s.items[id]; it.Pos == nil && it.Owner == owner {
			out = append(out, id)
		}
	}
	return out
}

// PickUp moves an item from the ground into owner's inventory.
// Treasure is converted into gold instead of being carried.
func (s *Store) PickUp(owner ID, itemID ItemID) error {
	e, err := s.Get(owner)
	if err != nil {
		return err
	}
	it, err := s.Item(itemID)
	if err != nil {
		return err
	}
	if !it.OnGround() {
		return fmt.Errorf("pick up item %d: already carried by %d", itemID, it.Owner)
	}

	if it.Kind == gamedata.ItemTreasure {
		e.Gold += it.Effect.Value
		s.RemoveItem(itemID)
		return nil
	}

	carried := 0
	for _, id := range s.Inventory(owner) {
		if s.items[id].Kind == it.Kind {
			carried++
		}
	}
	if carried >= MaxPerKind {
		return fmt.Errorf("pick up %s: %w", it.Name, ErrInventoryFull)
	}

	it.Pos = nil
	it.Owner = owner
	return nil
}

// Give places a new item straight into owner's inventory, bypassing the
// per-kind limit. It is used to carry the player's belongings between levels.
func (s *Store) Give(owner ID, item Item) (ItemID, error) {
	if _, err := s.Get(owner); err != nil {
		return 0, err
	}
	item.ID = s.nextItem
	item.Pos = nil
	item.Owner = owner
	s.nextItem++
	s.items[item.ID] = &item
	s.itemOrder = append(s.itemOrder, item.ID)
	return item.ID, nil
}

// RemoveItem deletes an item, unequipping it if needed.
func (s *Store) RemoveItem(id ItemID) {
	it, ok := s.items[id]
	if !ok {
		return
	}
	if owner, ok := s.entities[it.Owner]; ok {
		if owner.Weapon == id {
			owner.Weapon = 0
		}
		if owner.Armor == id {
			owner.Armor = 0
		}
	}
	delete(s.items, id)
	for i, v := range s.itemOrder {
		if v == id {
			s.itemOrder = append(s.itemOrder[:i], s.itemOrder[i+1:]...)
			break
		}
	}
}

func (s *Store) drop(id ItemID, pos world.Position) {
	it := s.items[id]
	p := pos
	it.Pos = &p
	it.Owner = 0
}

// Equip makes a carried weapon or armor the owner's active one.
func (s *Store) Equip(owner ID, id ItemID) error {
	e, err := s.Get(owner)
	if err != nil {
		return err
	}
	it, err := s.Item(id)
	if err != nil {
		return err
	}
	if it.Owner != owner || it.OnGround() {
		return fmt.Errorf("equip item %d: not carried by entity %d", id, owner)
	}
	switch it.Kind {
	case gamedata.ItemWeapon:
		e.Weapon = id
	case gamedata.ItemArmor:
		e.Armor = id
	default:
		return fmt.Errorf("equip item %d: %s cannot be equipped", id, it.Kind)
	}
	return nil
}

// ConsumeItem removes a carried item from owner's inventory and returns it.
func (s *Store) ConsumeItem(owner ID, id ItemID) (Item, error) {
	it, err := s.Item(id)
	if err != nil {
		return Item{}, err
	}
	if it.OnGround() || it.Owner != owner {
		return Item{}, fmt.Errorf("consume item %d: not carried by entity %d: %w", id, owner, ErrNotFound)
	}
	out := *it
	s.RemoveItem(id)
	return out, nil
}
