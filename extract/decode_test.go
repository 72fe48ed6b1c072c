package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		encoding string
		want     string
		wantErr  string
	}{
		{name: "plain utf-8", data: []byte("// héllo"), want: "// héllo"},
		{name: "bom stripped", data: append([]byte{0xEF, 0xBB, 0xBF}, "// x"...), encoding: "UTF-8", want: "// x"},
		{name: "invalid utf-8", data: []byte{0xff, 0xfe, 0x41}, wantErr: "not valid UTF-8"},
		{name: "gbk", data: []byte{0xC4, 0xE3, 0xBA, 0xC3}, encoding: "gbk", want: "你好"},
		{name: "unknown encoding", data: []byte("x"), encoding: "klingon", wantErr: "unsupported encoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.data, tt.encoding)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckEncoding(t *testing.T) {
	for _, name := range Encodings() {
		assert.NoError(t, CheckEncoding(name), name)
	}
	assert.NoError(t, CheckEncoding(""))
	assert.NoError(t, CheckEncoding("utf8"))
	assert.Error(t, CheckEncoding("klingon"))
}
