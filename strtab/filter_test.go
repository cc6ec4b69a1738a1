package strtab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"hello", true},
		{"hello!", false},
		{" hello", false},
		{"hello ", false},
		{"two  spaces", false},
		{"two spaces", true},
		{"42", true},
		{"7", true},
		{"zR", false},
		{"ab", true},
		{"AB", true},
		{"Id", true},
		{"MAX", true},
		{"a_b", true},
		{"a.b", false},
		{"x", false},
		{"", false},
		{"1.25", true},
		{"1.5", false},
		{"-100", true},
		{"__--", false},
		{"test_name", true},
		{"ID_Achievement_01", true},
		{"/Script/OakGame.OakItemPool", true},
		{"a_b_c_d_e_f", false},
		{"under_score_name_here_ok", true},
		{"back`tick", false},
		{"paren(s)", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, IsValid(tt.in))
		})
	}
}

func TestIsPacked(t *testing.T) {
	require.False(t, IsPacked("IPL_Short"))
	require.True(t, IsPacked("IPL_GrassBoss_01IPL_Other"))
	require.True(t, IsPacked("ItemPool_Rare_Table_Something"))
	require.False(t, IsPacked("a_very_long_name_without_markers"))
}

func TestSplitPacked(t *testing.T) {
	t.Run("marker boundaries", func(t *testing.T) {
		require.Equal(t,
			[]string{"IPL_GrassBoss_01", "IPL_Other_Thing"},
			SplitPacked("IPL_GrassBoss_01IPL_Other_Thing"))
	})

	t.Run("leading underscore is re-prefixed", func(t *testing.T) {
		require.Equal(t,
			[]string{"IPL_GrassBoss_Loot", "IPL_Other_Pool"},
			SplitPacked("_GrassBoss_LootIPL_Other_Pool"))
	})

	t.Run("paths", func(t *testing.T) {
		require.Equal(t,
			[]string{"ItemPool_Main", "/Game/Pools/Loot", "/Script/Oak.Pool"},
			SplitPacked("ItemPool_Main/Game/Pools/Loot/Script/Oak.Pool"))
	})

	t.Run("invalid fragments are dropped", func(t *testing.T) {
		require.Equal(t,
			[]string{"Table_Loot_Rare"},
			SplitPacked("x!Table_Loot_Rare"))
	})

	t.Run("nothing valid keeps the original", func(t *testing.T) {
		require.Equal(t, []string{"!!IPL!!"}, SplitPacked("!!IPL!!"))
	})
}
