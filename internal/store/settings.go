package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

const (
	// deviceNameKey holds the name of the device this machine writes under.
	deviceNameKey = "device-name"

	// deviceLinksPrefix + device name holds that device's link toggle.
	deviceLinksPrefix = "device-links-"
)

// GetSetting returns the value stored under key and whether it exists.
func (db *DB) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetSetting stores value under key, replacing any previous value.
func (db *DB) SetSetting(ctx context.Context, key, value string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// DeviceName returns the stored device name, or "" when none is set.
func (db *DB) DeviceName(ctx context.Context) (string, error) {
	name, _, err := db.GetSetting(ctx, deviceNameKey)
	return strings.TrimSpace(name), err
}

// SetDeviceName stores the device name for this machine.
func (db *DB) SetDeviceName(ctx context.Context, name string) error {
	return db.SetSetting(ctx, deviceNameKey, strings.TrimSpace(name))
}

// DeviceLinks reports whether file:// links are enabled for device.
// Links are on unless explicitly turned off.
func (db *DB) DeviceLinks(ctx context.Context, device string) (bool, error) {
	raw, ok, err := db.GetSetting(ctx, deviceLinksPrefix+device)
	if err != nil || !ok {
		return true, err
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return true, nil
	}
	return enabled, nil
}

// SetDeviceLinks turns file:// links on or off for device.
func (db *DB) SetDeviceLinks(ctx context.Context, device string, enabled bool) error {
	return db.SetSetting(ctx, deviceLinksPrefix+device, strconv.FormatBool(enabled))
}
