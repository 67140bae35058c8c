package channel

import (
	"context"

	"inkwell/internal/protocol"
	"inkwell/internal/query"
)

// Every typed query also returns the snapshot version the engine answered
// against. A version above the one the caller last rendered means the
// answer was computed for newer text.

// call sends typ, waits, and decodes the payload into out. found is false
// for a null result.
func (h *Host) call(ctx context.Context, typ protocol.MessageType, params, out any) (found bool, version uint64, err error) {
	fut, err := h.Request(typ, params)
	if err != nil {
		return false, 0, err
	}
	env, err := fut.Wait(ctx)
	if err != nil {
		return false, 0, err
	}
	if out == nil {
		return false, env.Version, nil
	}
	found, err = protocol.DecodePayload(h.codec, env, out)
	return found, env.Version, err
}

// Hover returns nil when nothing is known about the word at index.
func (h *Host) Hover(ctx context.Context, index int) (*protocol.HoverResult, uint64, error) {
	var res protocol.HoverResult
	found, version, err := h.call(ctx, protocol.TypeHover, protocol.IndexParams{Index: index}, &res)
	if err != nil || !found {
		return nil, version, err
	}
	return &res, version, nil
}

// Definition returns nil when the word at index is not declared.
func (h *Host) Definition(ctx context.Context, index int) (*protocol.Location, uint64, error) {
	var loc protocol.Location
	found, version, err := h.call(ctx, protocol.TypeDefinition, protocol.IndexParams{Index: index}, &loc)
	if err != nil || !found {
		return nil, version, err
	}
	return &loc, version, nil
}

func (h *Host) Occurrences(ctx context.Context, index int) ([]protocol.Range, uint64, error) {
	var ranges []protocol.Range
	_, version, err := h.call(ctx, protocol.TypeOccurrences, protocol.IndexParams{Index: index}, &ranges)
	if err != nil {
		return nil, version, err
	}
	return ranges, version, nil
}

func (h *Host) Completions(ctx context.Context, index int) ([]protocol.CompletionItem, uint64, error) {
	var items []protocol.CompletionItem
	_, version, err := h.call(ctx, protocol.TypeCompletions, protocol.IndexParams{Index: index}, &items)
	if err != nil {
		return nil, version, err
	}
	return items, version, nil
}

// NextWordBoundary returns index itself when the request fails.
func (h *Host) NextWordBoundary(ctx context.Context, index int, dir query.Direction) (int, uint64, error) {
	var loc protocol.Location
	params := protocol.BoundaryParams{Index: index, Direction: dir.String()}
	_, version, err := h.call(ctx, protocol.TypeWordBoundary, params, &loc)
	if err != nil {
		return index, version, err
	}
	return loc.TargetIndex, version, nil
}

// Shutdown asks the engine to stop after replying, then closes the host.
func (h *Host) Shutdown(ctx context.Context) error {
	_, _, err := h.call(ctx, protocol.TypeShutdown, nil, nil)
	if cerr := h.Close(); err == nil {
		err = cerr
	}
	return err
}
