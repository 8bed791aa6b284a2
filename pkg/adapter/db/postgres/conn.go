// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"github.com/momeni/lendweb/pkg/core/repo"
)

// Conn is an acquired connection. Its statements are auto-committed.
type Conn struct {
	session
}

func (c *Conn) IsConn() {
}

// Tx runs f in a new transaction which is committed if f returns nil.
// An error or panic of f rolls it back. Errors of f are wrapped, so
// they may still be matched by errors.Is and errors.As.
func (c *Conn) Tx(ctx context.Context, f repo.TxHandler) (err error) {
	gtx := c.DB.WithContext(ctx).Begin()
	if gtx.Error != nil {
		return fmt.Errorf("beginning tx: %w", gtx.Error)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		rbErr := gtx.Rollback().Error
		if r := recover(); r != nil {
			err = fmt.Errorf("tx handler panicked: %v", r)
		}
		if rbErr != nil {
			err = fmt.Errorf("%w (rollback: %w)", err, rbErr)
		}
	}()
	if err = f(ctx, &Tx{session{gtx}}); err != nil {
		return err
	}
	committed = true
	if err = gtx.Commit().Error; err != nil {
		return fmt.Errorf("committing tx: %w", TranslateError(err))
	}
	return nil
}
